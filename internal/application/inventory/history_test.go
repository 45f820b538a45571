package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/activos-api/internal/application/inventory"
	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/custody"
	"github.com/jhoicas/activos-api/internal/domain/entity"
)

// recorrido: día 0 traslado a S5, día 2 recepción, día 5 cambio de estado, día 9 traslado a S7.
func seedJourney(t *testing.T, f *fixture) {
	t.Helper()
	ctx := context.Background()

	tr := f.transfer(t, assetA1, storeS5, 1)
	f.clock.AdvanceDays(2)
	_, err := f.receipts.ConfirmReceipt(ctx, inventory.ReceiptInput{Technician: techJuan, TransferEntryID: tr.ID, AssetID: assetA1})
	require.NoError(t, err)
	f.clock.AdvanceDays(3)
	_, err = f.direct.ChangeStatus(ctx, inventory.DirectMovementInput{AssetID: assetA1}, entity.StatusAvailable)
	require.NoError(t, err)
	f.clock.AdvanceDays(4)
	f.transfer(t, assetA1, storeS7, 1)
	f.clock.AdvanceDays(1)
}

func TestAssetHistory_PermanenciaYLlegada(t *testing.T) {
	f := newFixture(t)
	seedJourney(t, f)

	h, err := f.history.AssetHistory(context.Background(), assetA1, "")
	require.NoError(t, err)
	require.Len(t, h.Entries, 4)

	// Del más reciente al más antiguo.
	assert.Equal(t, string(entity.MovementTypeTransfer), h.Entries[0].Type)
	assert.Equal(t, 4, h.Entries[0].DaysInLocation)
	assert.Equal(t, string(entity.MovementTypeStatusChange), h.Entries[1].Type)
	assert.Equal(t, 3, h.Entries[1].DaysInLocation)
	assert.Equal(t, 2, h.Entries[2].DaysInLocation)
	assert.Equal(t, 10, h.Entries[3].DaysInLocation, "el más antiguo se compara contra ahora")
	assert.Nil(t, h.ArrivalDate)

	assert.True(t, h.Location.InTransit)
	assert.Equal(t, storeS7, h.Location.StoreID)

	s5, err := f.history.AssetHistory(context.Background(), assetA1, storeS5)
	require.NoError(t, err)
	require.Len(t, s5.Entries, 2, "el cambio de estado sin tienda queda fuera")
	require.NotNil(t, s5.ArrivalDate)
	assert.Equal(t, baseTime, *s5.ArrivalDate)
}

func TestAssetHistory_ActivoInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.history.AssetHistory(context.Background(), "nope", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.history.Custody(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssetHistory_SinMovimientos(t *testing.T) {
	f := newFixture(t)

	h, err := f.history.AssetHistory(context.Background(), assetA1, "")
	require.NoError(t, err)
	assert.Empty(t, h.Entries)
	assert.False(t, h.Location.Known)
}

func TestCustody_Cadena(t *testing.T) {
	f := newFixture(t)
	seedJourney(t, f)

	c, err := f.history.Custody(context.Background(), assetA1)
	require.NoError(t, err)
	require.Len(t, c.Segments, 3)

	assert.Equal(t, custody.HolderTechnician, c.Segments[0].HolderKind)
	assert.Equal(t, techJuan, c.Segments[0].Holder)
	require.NotNil(t, c.Segments[0].Until)

	assert.Equal(t, custody.HolderStore, c.Segments[1].HolderKind)
	assert.Equal(t, storeS5, c.Segments[1].Holder)

	assert.Equal(t, custody.HolderTechnician, c.Segments[2].HolderKind)
	assert.Nil(t, c.Segments[2].Until, "custodio actual")
}

func TestPending_PorTiendaYPorCodigo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.transfer(t, assetA1, storeS5, 1)
	f.clock.AdvanceDays(1)
	f.transfer(t, assetC1, storeS5, 2)
	f.transfer(t, assetC1, storeS7, 1)
	f.clock.AdvanceDays(2)

	s5, err := f.history.PendingByStore(ctx, storeS5)
	require.NoError(t, err)
	require.Len(t, s5.Items, 2)
	assert.Equal(t, assetA1, s5.Items[0].Transfer.AssetID, "del más antiguo al más reciente")
	assert.Equal(t, 3, s5.Items[0].DaysPending)
	assert.Equal(t, "Notebook Lenovo T14", s5.Items[0].AssetName)

	byCode, err := f.history.PendingByBarcode(ctx, "  sn-a1 ")
	require.NoError(t, err)
	require.Len(t, byCode.Items, 1)
	assert.Equal(t, string(entity.AssetKindUnique), byCode.Items[0].AssetKind)

	_, err = f.history.PendingByBarcode(ctx, "SN-ZZZ")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.history.PendingByBarcode(ctx, "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.history.PendingByStore(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
