package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/activos-api/internal/application/inventory"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
	"github.com/jhoicas/activos-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: bodega central, tiendas S5 y S7, notebook A1 y cables C1 (stock 10)
// ──────────────────────────────────────────────────────────────────────────────

const (
	storeCentral = "store-central"
	storeS5      = "store-s5"
	storeS7      = "store-s7"
	assetA1      = "asset-a1"
	assetC1      = "asset-c1"
	techJuan     = "juan.perez"
)

var baseTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// clock reloj manual para los casos de uso.
type clock struct{ t time.Time }

func (c *clock) Now() time.Time          { return c.t }
func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }
func (c *clock) AdvanceDays(days int)    { c.Advance(time.Duration(days) * 24 * time.Hour) }

type fixture struct {
	db        *memory.Store
	clock     *clock
	transfers *inventory.TransferUseCase
	receipts  *inventory.ReceiptUseCase
	direct    *inventory.AssetMovementUseCase
	history   *inventory.HistoryUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := memory.NewStore()

	for _, s := range []entity.Store{
		{ID: storeCentral, Code: "CENTRAL", Name: "Bodega central", Kind: entity.StoreKindWarehouse},
		{ID: storeS5, Code: "S5", Name: "Tienda 5", Kind: entity.StoreKindRetail},
		{ID: storeS7, Code: "S7", Name: "Tienda 7", Kind: entity.StoreKindRetail},
	} {
		s := s
		s.CreatedAt = baseTime
		require.NoError(t, db.Stores().Create(ctx, &s))
	}

	serial := "SN-A1"
	require.NoError(t, db.Assets().Create(ctx, &entity.Asset{
		ID: assetA1, Kind: entity.AssetKindUnique, Name: "Notebook Lenovo T14", SerialNumber: &serial,
		Status: entity.StatusAvailable, UnitValue: decimal.NewFromInt(900), Active: true,
	}))
	require.NoError(t, db.Assets().Create(ctx, &entity.Asset{
		ID: assetC1, Kind: entity.AssetKindConsumable, Name: "Cable HDMI", StockQuantity: 10, MinStock: 5,
		UnitValue: decimal.NewFromInt(8), Active: true,
	}))

	clk := &clock{t: baseTime}
	return &fixture{
		db:        db,
		clock:     clk,
		transfers: inventory.NewTransferUseCase(db, inventory.NoopLocker{}).WithClock(clk.Now),
		receipts:  inventory.NewReceiptUseCase(db, nil).WithClock(clk.Now),
		direct:    inventory.NewAssetMovementUseCase(db, nil).WithClock(clk.Now),
		history:   inventory.NewHistoryUseCase(db.Assets(), db.Movements(), db.Stores()).WithClock(clk.Now),
	}
}

func (f *fixture) asset(t *testing.T, id string) *entity.Asset {
	t.Helper()
	a, err := f.db.Assets().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, a)
	return a
}

func (f *fixture) ledger(t *testing.T, assetID string) []*entity.MovementEntry {
	t.Helper()
	entries, err := f.db.Movements().ListByAsset(context.Background(), assetID)
	require.NoError(t, err)
	return entries
}

func (f *fixture) transfer(t *testing.T, assetID, dest string, qty int) *entity.MovementEntry {
	t.Helper()
	e, err := f.transfers.Transfer(context.Background(), inventory.TransferInput{
		AssetID: assetID, DestinationStoreID: dest, Quantity: qty, Technician: techJuan,
	})
	require.NoError(t, err)
	return e
}

func intPtr(v int) *int { return &v }

// failingRunner envuelve un TxRunner y hace fallar el Append del ledger.
type failingRunner struct {
	inner inventory.TxRunner
}

var errLedgerDown = errors.New("ledger no disponible")

type failingMovements struct {
	repository.MovementRepository
}

func (failingMovements) Append(context.Context, *entity.MovementEntry) error { return errLedgerDown }

func (r failingRunner) Run(ctx context.Context, fn func(
	repository.AssetRepository,
	repository.MovementRepository,
	repository.StoreRepository,
) error) error {
	return r.inner.Run(ctx, func(a repository.AssetRepository, m repository.MovementRepository, s repository.StoreRepository) error {
		return fn(a, failingMovements{m}, s)
	})
}
