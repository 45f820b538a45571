package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/custody"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/movement"
	"github.com/jhoicas/activos-api/internal/domain/repository"
)

// TransferUseCase motor de traslados: valida y ejecuta envíos hacia una tienda dejando el
// traslado pendiente de recepción. Activo único: available -> in_transit. Insumo: débito de stock.
type TransferUseCase struct {
	txRunner TxRunner
	locker   AssetLocker
	now      func() time.Time
}

// NewTransferUseCase construye el caso de uso. locker puede ser nil.
func NewTransferUseCase(txRunner TxRunner, locker AssetLocker) *TransferUseCase {
	return &TransferUseCase{txRunner: txRunner, locker: locker, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *TransferUseCase) WithClock(now func() time.Time) *TransferUseCase {
	uc.now = now
	return uc
}

// TransferInput entrada del traslado. Quantity se ignora para activos únicos.
// OriginStoreID es opcional: si falta se usa la ubicación derivada del ledger.
type TransferInput struct {
	AssetID            string
	DestinationStoreID string
	OriginStoreID      string
	Quantity           int
	Technician         string
	Counterparty       string
	Notes              string
}

// Transfer ejecuta el traslado. Orden de validación (ninguna falla deja mutaciones):
//  1. el activo existe;
//  2. insumo: 1 <= cantidad <= stock, si no ErrInsufficientStock;
//  3. activo único: estado available, si no ErrInvalidStateTransition; cantidad forzada a 1;
//  4. la tienda destino existe.
//
// Luego, en la misma transacción, muta el activo y agrega el Transfer al ledger.
func (uc *TransferUseCase) Transfer(ctx context.Context, in TransferInput) (*entity.MovementEntry, error) {
	if in.AssetID == "" || in.DestinationStoreID == "" {
		return nil, fmt.Errorf("%w: asset_id y destination_store_id son obligatorios", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Technician) == "" {
		return nil, fmt.Errorf("%w: technician es obligatorio", domain.ErrInvalidInput)
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
		// Bloquea la fila del activo: dos traslados concurrentes se serializan aquí
		asset, err := assetRepo.GetForUpdate(ctx, in.AssetID)
		if err != nil {
			return err
		}
		if asset == nil || !asset.Active {
			return fmt.Errorf("%w: activo %s", domain.ErrNotFound, in.AssetID)
		}

		tr, err := movement.Lookup(asset.Kind, asset.Status, movement.OpTransfer)
		if err != nil {
			return err
		}
		qty, delta, err := movement.ResolveQuantity(tr.Quantity, &in.Quantity, asset.StockQuantity, 0)
		if err != nil {
			return err
		}

		dest, err := storeRepo.GetByID(ctx, in.DestinationStoreID)
		if err != nil {
			return err
		}
		if dest == nil {
			return fmt.Errorf("%w: tienda destino %s", domain.ErrNotFound, in.DestinationStoreID)
		}

		origin, err := uc.resolveOrigin(ctx, movRepo, storeRepo, asset, in.OriginStoreID)
		if err != nil {
			return err
		}
		if origin == dest.ID {
			return fmt.Errorf("%w: origen y destino no pueden ser la misma tienda", domain.ErrInvalidInput)
		}

		if err := applyTransition(ctx, assetRepo, asset, tr, delta, entity.StatusNone); err != nil {
			return err
		}

		entry := newEntry(asset.ID, tr.MovementType, qty, uc.now())
		entry.OriginStoreID = optional(origin)
		entry.DestinationStoreID = &dest.ID
		entry.ActorTechnician = strings.TrimSpace(in.Technician)
		entry.CounterpartyName = in.Counterparty
		entry.Notes = in.Notes
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

// resolveOrigin devuelve la tienda de origen indicada (debe existir) o, para activos únicos,
// la última ubicación confirmada según el ledger. Los insumos salen del pool global.
func (uc *TransferUseCase) resolveOrigin(
	ctx context.Context,
	movRepo repository.MovementRepository,
	storeRepo repository.StoreRepository,
	asset *entity.Asset,
	requested string,
) (string, error) {
	if requested != "" {
		origin, err := storeRepo.GetByID(ctx, requested)
		if err != nil {
			return "", err
		}
		if origin == nil {
			return "", fmt.Errorf("%w: tienda origen %s", domain.ErrNotFound, requested)
		}
		return origin.ID, nil
	}
	if !asset.IsUnique() {
		return "", nil
	}
	entries, err := movRepo.ListByAsset(ctx, asset.ID)
	if err != nil {
		return "", err
	}
	loc := custody.CurrentLocation(entries)
	if !loc.Known || loc.InTransit {
		return "", nil
	}
	return loc.StoreID, nil
}
