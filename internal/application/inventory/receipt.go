package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/movement"
	"github.com/jhoicas/activos-api/internal/domain/repository"
)

const defaultReceiptNote = "Recepción confirmada"

// ReceiptUseCase conciliador de recepciones: cierra un traslado pendiente en la tienda destino.
// Una divergencia (daño, faltante) se anota en el ledger pero nunca bloquea la recepción.
type ReceiptUseCase struct {
	txRunner TxRunner
	locker   AssetLocker
	now      func() time.Time
}

// NewReceiptUseCase construye el caso de uso. locker puede ser nil.
func NewReceiptUseCase(txRunner TxRunner, locker AssetLocker) *ReceiptUseCase {
	return &ReceiptUseCase{txRunner: txRunner, locker: locker, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *ReceiptUseCase) WithClock(now func() time.Time) *ReceiptUseCase {
	uc.now = now
	return uc
}

// ReceiptInput entrada de la confirmación. ReceivedQuantity nil = recepción total.
type ReceiptInput struct {
	TransferEntryID       string
	AssetID               string
	ReceivedQuantity      *int
	HasDivergence         bool
	DivergenceType        string
	DivergenceDescription string
	Technician            string
	Notes                 string
}

// ConfirmReceipt resuelve el Transfer indicado exactamente una vez:
//   - Transfer inexistente o de otro activo: ErrNotFound.
//   - Transfer ya recibido: ErrAlreadyResolved (la recepción física ocurre una sola vez).
//
// Activo único: in_transit -> available. Insumo: suma la cantidad recibida al stock.
// Mutación y asiento Receipt se confirman en la misma transacción.
func (uc *ReceiptUseCase) ConfirmReceipt(ctx context.Context, in ReceiptInput) (*entity.MovementEntry, error) {
	if in.TransferEntryID == "" || in.AssetID == "" {
		return nil, fmt.Errorf("%w: transfer_id y asset_id son obligatorios", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Technician) == "" {
		return nil, fmt.Errorf("%w: technician es obligatorio", domain.ErrInvalidInput)
	}
	if in.HasDivergence && strings.TrimSpace(in.DivergenceType) == "" && strings.TrimSpace(in.DivergenceDescription) == "" {
		return nil, fmt.Errorf("%w: la divergencia requiere tipo o descripción", domain.ErrInvalidInput)
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
		_ repository.StoreRepository,
	) error {
		transfer, err := movRepo.GetForUpdate(ctx, in.TransferEntryID)
		if err != nil {
			return err
		}
		if transfer == nil || transfer.Type != entity.MovementTypeTransfer || transfer.AssetID != in.AssetID {
			return fmt.Errorf("%w: traslado %s para el activo %s", domain.ErrNotFound, in.TransferEntryID, in.AssetID)
		}
		resolution, err := movRepo.FindResolution(ctx, transfer.ID)
		if err != nil {
			return err
		}
		if resolution != nil {
			return fmt.Errorf("%w: recibido en el movimiento %s", domain.ErrAlreadyResolved, resolution.ID)
		}

		asset, err := assetRepo.GetForUpdate(ctx, in.AssetID)
		if err != nil {
			return err
		}
		if asset == nil {
			return fmt.Errorf("%w: activo %s", domain.ErrNotFound, in.AssetID)
		}

		tr, err := movement.Lookup(asset.Kind, asset.Status, movement.OpReceipt)
		if err != nil {
			return err
		}
		qty, delta, err := movement.ResolveQuantity(tr.Quantity, in.ReceivedQuantity, asset.StockQuantity, transfer.Quantity)
		if err != nil {
			return err
		}
		if err := applyTransition(ctx, assetRepo, asset, tr, delta, entity.StatusNone); err != nil {
			return err
		}

		entry := newEntry(asset.ID, tr.MovementType, qty, uc.now())
		entry.OriginStoreID = transfer.OriginStoreID
		entry.DestinationStoreID = transfer.DestinationStoreID
		entry.ActorTechnician = strings.TrimSpace(in.Technician)
		entry.CounterpartyName = transfer.CounterpartyName
		entry.ResolvesEntryID = &transfer.ID
		entry.Notes = receiptNotes(in)
		if in.HasDivergence {
			entry.Divergence = &entity.Divergence{Type: in.DivergenceType, Description: in.DivergenceDescription}
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

// receiptNotes nota de confirmación; con divergencia agrega tipo y descripción tal cual llegaron.
func receiptNotes(in ReceiptInput) string {
	note := strings.TrimSpace(in.Notes)
	if note == "" {
		note = defaultReceiptNote
	}
	if !in.HasDivergence {
		return note
	}
	return fmt.Sprintf("%s | Divergencia (%s): %s", note, in.DivergenceType, in.DivergenceDescription)
}
