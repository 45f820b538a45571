package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/movement"
	"github.com/jhoicas/activos-api/internal/domain/repository"
)

// applyTransition aplica al registro el efecto de una transición ya validada:
// nuevo estado para activos únicos, delta de stock para insumos.
func applyTransition(
	ctx context.Context,
	assetRepo repository.AssetRepository,
	asset *entity.Asset,
	tr movement.Transition,
	delta int,
	target entity.AssetStatus,
) error {
	if asset.IsUnique() {
		next := tr.Next
		if tr.TargetFromInput {
			next = target
		}
		if err := assetRepo.UpdateStatus(ctx, asset.ID, next); err != nil {
			return err
		}
		asset.Status = next
		return nil
	}
	if delta == 0 {
		return nil
	}
	if err := assetRepo.AdjustStock(ctx, asset.ID, delta); err != nil {
		return err
	}
	asset.StockQuantity += delta
	return nil
}

func newEntry(assetID string, typ entity.MovementType, qty int, now time.Time) *entity.MovementEntry {
	return &entity.MovementEntry{
		ID:        uuid.New().String(),
		AssetID:   assetID,
		Type:      typ,
		Quantity:  qty,
		Timestamp: now,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func lockAsset(ctx context.Context, locker AssetLocker, assetID string) (func(), error) {
	if locker == nil {
		return func() {}, nil
	}
	return locker.Lock(ctx, assetID)
}
