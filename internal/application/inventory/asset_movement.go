package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/movement"
	"github.com/jhoicas/activos-api/internal/domain/repository"
)

// AssetMovementUseCase movimientos directos que no pasan por un traslado:
// salida a un tercero, reingreso, mantenimiento, baja, cambio de estado administrativo y
// entrada de stock. Todos consultan la misma tabla de transiciones que el motor de traslados.
type AssetMovementUseCase struct {
	txRunner TxRunner
	locker   AssetLocker
	now      func() time.Time
}

// NewAssetMovementUseCase construye el caso de uso. locker puede ser nil.
func NewAssetMovementUseCase(txRunner TxRunner, locker AssetLocker) *AssetMovementUseCase {
	return &AssetMovementUseCase{txRunner: txRunner, locker: locker, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *AssetMovementUseCase) WithClock(now func() time.Time) *AssetMovementUseCase {
	uc.now = now
	return uc
}

// DirectMovementInput entrada común. StoreID es la tienda donde ocurre el movimiento (opcional):
// se registra como destino en reingresos y entradas de stock y como origen en el resto.
type DirectMovementInput struct {
	AssetID      string
	StoreID      string
	Quantity     int
	Technician   string
	Counterparty string
	Notes        string
	// UnitCost costo unitario de la entrada de stock. Si es positivo recalcula el valor del insumo
	// por costo promedio ponderado.
	UnitCost decimal.Decimal
}

// CheckOut entrega el activo a un tercero (Exit). Activo único: available -> in_use.
func (uc *AssetMovementUseCase) CheckOut(ctx context.Context, in DirectMovementInput) (*entity.MovementEntry, error) {
	if strings.TrimSpace(in.Counterparty) == "" {
		return nil, fmt.Errorf("%w: counterparty es obligatorio", domain.ErrInvalidInput)
	}
	return uc.apply(ctx, movement.OpCheckOut, in, entity.StatusNone)
}

// CheckIn reingresa un activo único prestado o reparado (Entry).
func (uc *AssetMovementUseCase) CheckIn(ctx context.Context, in DirectMovementInput) (*entity.MovementEntry, error) {
	return uc.apply(ctx, movement.OpCheckIn, in, entity.StatusNone)
}

// SendToMaintenance envía un activo único a mantenimiento.
func (uc *AssetMovementUseCase) SendToMaintenance(ctx context.Context, in DirectMovementInput) (*entity.MovementEntry, error) {
	return uc.apply(ctx, movement.OpMaintenance, in, entity.StatusNone)
}

// Dispose da de baja: activo único -> discarded; insumo: débito de la cantidad indicada.
func (uc *AssetMovementUseCase) Dispose(ctx context.Context, in DirectMovementInput) (*entity.MovementEntry, error) {
	return uc.apply(ctx, movement.OpDisposal, in, entity.StatusNone)
}

// StockEntry suma unidades de un insumo (compra, devolución).
func (uc *AssetMovementUseCase) StockEntry(ctx context.Context, in DirectMovementInput) (*entity.MovementEntry, error) {
	if in.UnitCost.IsNegative() {
		return nil, fmt.Errorf("%w: unit_cost no puede ser negativo", domain.ErrInvalidInput)
	}
	return uc.apply(ctx, movement.OpStockEntry, in, entity.StatusNone)
}

// ChangeStatus corrección administrativa del estado de un activo único.
// No puede fijar ni abandonar in_transit.
func (uc *AssetMovementUseCase) ChangeStatus(ctx context.Context, in DirectMovementInput, target entity.AssetStatus) (*entity.MovementEntry, error) {
	if !movement.ValidStatusTarget(target) {
		return nil, fmt.Errorf("%w: estado destino %q", domain.ErrInvalidInput, target)
	}
	return uc.apply(ctx, movement.OpStatusChange, in, target)
}

func (uc *AssetMovementUseCase) apply(
	ctx context.Context,
	op movement.Operation,
	in DirectMovementInput,
	target entity.AssetStatus,
) (*entity.MovementEntry, error) {
	if in.AssetID == "" {
		return nil, fmt.Errorf("%w: asset_id es obligatorio", domain.ErrInvalidInput)
	}

	release, err := lockAsset(ctx, uc.locker, in.AssetID)
	if err != nil {
		return nil, err
	}
	defer release()

	var out *entity.MovementEntry
	err = uc.txRunner.Run(ctx, func(
		assetRepo repository.AssetRepository,
		movRepo repository.MovementRepository,
		storeRepo repository.StoreRepository,
	) error {
		asset, err := assetRepo.GetForUpdate(ctx, in.AssetID)
		if err != nil {
			return err
		}
		if asset == nil || !asset.Active {
			return fmt.Errorf("%w: activo %s", domain.ErrNotFound, in.AssetID)
		}

		tr, err := movement.Lookup(asset.Kind, asset.Status, op)
		if err != nil {
			return err
		}
		qty, delta, err := movement.ResolveQuantity(tr.Quantity, &in.Quantity, asset.StockQuantity, 0)
		if err != nil {
			return err
		}

		if in.StoreID != "" {
			store, err := storeRepo.GetByID(ctx, in.StoreID)
			if err != nil {
				return err
			}
			if store == nil {
				return fmt.Errorf("%w: tienda %s", domain.ErrNotFound, in.StoreID)
			}
		}

		from := asset.Status
		stockBefore := asset.StockQuantity
		if err := applyTransition(ctx, assetRepo, asset, tr, delta, target); err != nil {
			return err
		}

		if op == movement.OpStockEntry && in.UnitCost.IsPositive() {
			avg := movement.WeightedAverageCost(stockBefore, asset.UnitValue, qty, in.UnitCost).Round(2)
			if err := assetRepo.UpdateUnitValue(ctx, asset.ID, avg); err != nil {
				return err
			}
			asset.UnitValue = avg
		}

		entry := newEntry(asset.ID, tr.MovementType, qty, uc.now())
		switch tr.MovementType {
		case entity.MovementTypeEntry, entity.MovementTypeStockEntry:
			entry.DestinationStoreID = optional(in.StoreID)
		default:
			entry.OriginStoreID = optional(in.StoreID)
		}
		entry.ActorTechnician = strings.TrimSpace(in.Technician)
		entry.CounterpartyName = strings.TrimSpace(in.Counterparty)
		entry.Notes = in.Notes
		if tr.TargetFromInput && entry.Notes == "" {
			entry.Notes = fmt.Sprintf("Estado %s -> %s", from, asset.Status)
		}
		if err := movRepo.Append(ctx, entry); err != nil {
			return err
		}
		out = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
