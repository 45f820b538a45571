package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
	"github.com/jhoicas/activos-api/internal/infrastructure/memory"
)

func seed(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	db := memory.NewStore()
	serial := "SN-1"
	require.NoError(t, db.Assets().Create(ctx, &entity.Asset{
		ID: "a1", Kind: entity.AssetKindUnique, Name: "Notebook", SerialNumber: &serial,
		Status: entity.StatusAvailable, UnitValue: decimal.NewFromInt(900), Active: true,
	}))
	require.NoError(t, db.Assets().Create(ctx, &entity.Asset{
		ID: "c1", Kind: entity.AssetKindConsumable, Name: "Cable", StockQuantity: 3, MinStock: 5, Active: true,
	}))
	require.NoError(t, db.Stores().Create(ctx, &entity.Store{ID: "s5", Code: "S5", Name: "Tienda 5"}))
	return db
}

func TestRun_ErrorDescartaTodo(t *testing.T) {
	db := seed(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := db.Run(ctx, func(a repository.AssetRepository, m repository.MovementRepository, _ repository.StoreRepository) error {
		require.NoError(t, a.UpdateStatus(ctx, "a1", entity.StatusInTransit))
		require.NoError(t, m.Append(ctx, &entity.MovementEntry{ID: "m1", AssetID: "a1", Type: entity.MovementTypeTransfer, Quantity: 1, Timestamp: time.Now()}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	a, err := db.Assets().GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusAvailable, a.Status)
	got, err := db.Movements().ListByAsset(ctx, "a1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRun_ContextoCanceladoNoPublica(t *testing.T) {
	db := seed(t)
	ctx, cancel := context.WithCancel(context.Background())

	err := db.Run(ctx, func(a repository.AssetRepository, _ repository.MovementRepository, _ repository.StoreRepository) error {
		cancel()
		return a.AdjustStock(ctx, "c1", 2)
	})
	require.ErrorIs(t, err, context.Canceled)

	c1, err := db.Assets().GetByID(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, 3, c1.StockQuantity)
}

func TestAssetRepository_Restricciones(t *testing.T) {
	db := seed(t)
	ctx := context.Background()

	serial := "SN-1"
	err := db.Assets().Create(ctx, &entity.Asset{ID: "a2", Kind: entity.AssetKindUnique, SerialNumber: &serial, Active: true})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	assert.ErrorIs(t, db.Assets().AdjustStock(ctx, "c1", -4), domain.ErrInsufficientStock)
	require.NoError(t, db.Assets().AdjustStock(ctx, "c1", -3))
	assert.ErrorIs(t, db.Assets().UpdateStatus(ctx, "nope", entity.StatusInUse), domain.ErrNotFound)

	found, err := db.Assets().GetByIdentifier(ctx, "SN-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "a1", found.ID)

	low, err := db.Assets().List(ctx, repository.AssetFilter{LowStock: true, OnlyActive: true, Limit: 10})
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "c1", low[0].ID)
}

func TestAssetRepository_DeactivateEnTransito(t *testing.T) {
	db := seed(t)
	ctx := context.Background()

	require.NoError(t, db.Assets().UpdateStatus(ctx, "a1", entity.StatusInTransit))
	assert.ErrorIs(t, db.Assets().Deactivate(ctx, "a1"), domain.ErrInvalidStateTransition)
	a, err := db.Assets().GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.True(t, a.Active)

	require.NoError(t, db.Assets().UpdateStatus(ctx, "a1", entity.StatusAvailable))
	require.NoError(t, db.Assets().Deactivate(ctx, "a1"))
	assert.ErrorIs(t, db.Assets().Deactivate(ctx, "nope"), domain.ErrNotFound)
}

func TestMovementRepository_UnaSolaResolucion(t *testing.T) {
	db := seed(t)
	ctx := context.Background()
	movs := db.Movements()
	s5 := "s5"
	tr := "t1"
	now := time.Now()

	require.NoError(t, movs.Append(ctx, &entity.MovementEntry{ID: tr, AssetID: "a1", Type: entity.MovementTypeTransfer, Quantity: 1, DestinationStoreID: &s5, Timestamp: now}))
	pending, err := movs.ListPending(ctx, repository.PendingFilter{DestinationStoreID: s5})
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.NoError(t, movs.Append(ctx, &entity.MovementEntry{ID: "r1", AssetID: "a1", Type: entity.MovementTypeReceipt, Quantity: 1, DestinationStoreID: &s5, ResolvesEntryID: &tr, Timestamp: now.Add(time.Minute)}))
	err = movs.Append(ctx, &entity.MovementEntry{ID: "r2", AssetID: "a1", Type: entity.MovementTypeReceipt, Quantity: 1, ResolvesEntryID: &tr, Timestamp: now.Add(2 * time.Minute)})
	assert.ErrorIs(t, err, domain.ErrAlreadyResolved)

	res, err := movs.FindResolution(ctx, tr)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "r1", res.ID)

	pending, err = movs.ListPending(ctx, repository.PendingFilter{})
	require.NoError(t, err)
	assert.Empty(t, pending)

	err = movs.Append(ctx, &entity.MovementEntry{ID: "x", AssetID: "nope", Type: entity.MovementTypeEntry, Timestamp: now})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
