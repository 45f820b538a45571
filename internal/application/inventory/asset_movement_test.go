package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/activos-api/internal/application/inventory"
	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/entity"
)

// Caso 1: salida a un tercero y reingreso de un activo único.
func TestCheckOutCheckIn_ActivoUnico(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.direct.CheckOut(ctx, inventory.DirectMovementInput{AssetID: assetA1})
	require.ErrorIs(t, err, domain.ErrInvalidInput, "check-out exige contraparte")

	out, err := f.direct.CheckOut(ctx, inventory.DirectMovementInput{
		AssetID: assetA1, StoreID: storeCentral, Counterparty: "Ana Ruiz", Technician: techJuan,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeExit, out.Type)
	require.NotNil(t, out.OriginStoreID)
	assert.Equal(t, storeCentral, *out.OriginStoreID)
	assert.Equal(t, entity.StatusInUse, f.asset(t, assetA1).Status)

	// En uso no se puede trasladar.
	_, err = f.transfers.Transfer(ctx, inventory.TransferInput{AssetID: assetA1, DestinationStoreID: storeS5, Technician: techJuan})
	require.ErrorIs(t, err, domain.ErrInvalidStateTransition)

	in, err := f.direct.CheckIn(ctx, inventory.DirectMovementInput{AssetID: assetA1, StoreID: storeCentral})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeEntry, in.Type)
	require.NotNil(t, in.DestinationStoreID)
	assert.Equal(t, entity.StatusAvailable, f.asset(t, assetA1).Status)
}

// Caso 2: mantenimiento y baja; un activo dado de baja no admite más movimientos.
func TestMaintenanceDisposal_ActivoUnico(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.direct.SendToMaintenance(ctx, inventory.DirectMovementInput{AssetID: assetA1, Counterparty: "Servicio técnico Lenovo"})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusMaintenance, f.asset(t, assetA1).Status)

	_, err = f.direct.Dispose(ctx, inventory.DirectMovementInput{AssetID: assetA1, Notes: "placa madre dañada"})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDiscarded, f.asset(t, assetA1).Status)

	_, err = f.direct.CheckIn(ctx, inventory.DirectMovementInput{AssetID: assetA1})
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	_, err = f.transfers.Transfer(ctx, inventory.TransferInput{AssetID: assetA1, DestinationStoreID: storeS5, Technician: techJuan})
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

// Caso 3: movimientos de insumos: salida, baja y entrada de stock.
func TestDirectMovements_Insumo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.direct.CheckOut(ctx, inventory.DirectMovementInput{AssetID: assetC1, Quantity: 2, Counterparty: "Soporte"})
	require.NoError(t, err)
	_, err = f.direct.Dispose(ctx, inventory.DirectMovementInput{AssetID: assetC1, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 7, f.asset(t, assetC1).StockQuantity)

	_, err = f.direct.Dispose(ctx, inventory.DirectMovementInput{AssetID: assetC1, Quantity: 8})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	e, err := f.direct.StockEntry(ctx, inventory.DirectMovementInput{AssetID: assetC1, Quantity: 5, StoreID: storeCentral})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeStockEntry, e.Type)
	assert.Equal(t, 12, f.asset(t, assetC1).StockQuantity)

	_, err = f.direct.StockEntry(ctx, inventory.DirectMovementInput{AssetID: assetC1, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Reingreso y mantenimiento no aplican a insumos.
	_, err = f.direct.CheckIn(ctx, inventory.DirectMovementInput{AssetID: assetC1, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	_, err = f.direct.StockEntry(ctx, inventory.DirectMovementInput{AssetID: assetA1, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

// Caso 3b: entrada de stock con costo recalcula el valor unitario por promedio ponderado.
func TestStockEntry_CostoPromedio(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.direct.StockEntry(ctx, inventory.DirectMovementInput{AssetID: assetC1, Quantity: 10, UnitCost: decimal.NewFromInt(12)})
	require.NoError(t, err)
	c1 := f.asset(t, assetC1)
	assert.Equal(t, 20, c1.StockQuantity)
	assert.True(t, c1.UnitValue.Equal(decimal.NewFromInt(10)), "valor unitario %s", c1.UnitValue)

	_, err = f.direct.StockEntry(ctx, inventory.DirectMovementInput{AssetID: assetC1, Quantity: 1, UnitCost: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 20, f.asset(t, assetC1).StockQuantity)
}

// Caso 4: cambio de estado administrativo; in_transit no se fija ni se abandona.
func TestChangeStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	e, err := f.direct.ChangeStatus(ctx, inventory.DirectMovementInput{AssetID: assetA1}, entity.StatusMaintenance)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeStatusChange, e.Type)
	assert.Equal(t, "Estado available -> maintenance", e.Notes)
	assert.Equal(t, entity.StatusMaintenance, f.asset(t, assetA1).Status)

	_, err = f.direct.ChangeStatus(ctx, inventory.DirectMovementInput{AssetID: assetA1}, entity.StatusInTransit)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.direct.ChangeStatus(ctx, inventory.DirectMovementInput{AssetID: assetA1}, entity.StatusAvailable)
	require.NoError(t, err)
	f.transfer(t, assetA1, storeS5, 1)

	_, err = f.direct.ChangeStatus(ctx, inventory.DirectMovementInput{AssetID: assetA1}, entity.StatusAvailable)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	assert.Equal(t, entity.StatusInTransit, f.asset(t, assetA1).Status)

	_, err = f.direct.ChangeStatus(ctx, inventory.DirectMovementInput{AssetID: assetC1}, entity.StatusAvailable)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

// Caso 5: tienda indicada inexistente.
func TestDirectMovements_TiendaInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.direct.CheckIn(context.Background(), inventory.DirectMovementInput{AssetID: assetA1, StoreID: "nope"})
	// A1 está available: la transición se rechaza antes que la tienda.
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)

	_, err = f.direct.SendToMaintenance(context.Background(), inventory.DirectMovementInput{AssetID: assetA1, StoreID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, entity.StatusAvailable, f.asset(t, assetA1).Status)
}
