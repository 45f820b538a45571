package repository

import (
	"context"

	"github.com/jhoicas/activos-api/internal/domain/entity"
)

// PendingFilter filtros para traslados pendientes. Campos vacíos no filtran.
type PendingFilter struct {
	DestinationStoreID string
	AssetID            string
}

// MovementRepository puerto del ledger de movimientos. Solo se agrega: no hay Update ni Delete.
type MovementRepository interface {
	Append(ctx context.Context, entry *entity.MovementEntry) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.MovementEntry, error)
	// GetForUpdate bloquea la fila del movimiento para serializar recepciones concurrentes.
	GetForUpdate(ctx context.Context, id string) (*entity.MovementEntry, error)
	// FindResolution devuelve el Receipt que cierra el traslado, o nil si sigue pendiente.
	FindResolution(ctx context.Context, transferID string) (*entity.MovementEntry, error)
	// ListByAsset lista los movimientos de un activo, del más reciente al más antiguo.
	ListByAsset(ctx context.Context, assetID string) ([]*entity.MovementEntry, error)
	ListPending(ctx context.Context, filter PendingFilter) ([]*entity.MovementEntry, error)
}
