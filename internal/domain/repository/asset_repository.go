package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/activos-api/internal/domain/entity"
)

// AssetFilter filtros para listar activos.
type AssetFilter struct {
	Kind       entity.AssetKind
	Status     entity.AssetStatus
	OnlyActive bool
	LowStock   bool
	Limit      int
	Offset     int
}

// AssetRepository define el puerto de persistencia del registro de activos.
// Las mutaciones se ejecutan dentro de la transacción del caso de uso que las invoca;
// el repositorio no serializa por sí mismo más allá de lo que da la transacción.
type AssetRepository interface {
	Create(ctx context.Context, asset *entity.Asset) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Asset, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Asset, error)
	// GetByIdentifier busca por número de serie o etiqueta ya normalizados.
	GetByIdentifier(ctx context.Context, code string) (*entity.Asset, error)
	List(ctx context.Context, filter AssetFilter) ([]*entity.Asset, error)
	UpdateStatus(ctx context.Context, id string, status entity.AssetStatus) error
	// AdjustStock suma delta al stock; ErrInsufficientStock si el resultado fuese negativo.
	AdjustStock(ctx context.Context, id string, delta int) error
	// UpdateUnitValue fija el valor unitario (costo promedio de un insumo).
	UpdateUnitValue(ctx context.Context, id string, value decimal.Decimal) error
	// Deactivate es atómico con la condición de estado: ErrInvalidStateTransition si está in_transit.
	Deactivate(ctx context.Context, id string) error
}
