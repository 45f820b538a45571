package inventory

import (
	"context"

	"github.com/jhoicas/activos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que la mutación del activo y el asiento del ledger se confirmen o se descarten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		assetRepo repository.AssetRepository,
		movRepo repository.MovementRepository,
		storeRepo repository.StoreRepository,
	) error) error
}

// AssetLocker candado opcional por activo entre instancias del servicio.
// Reduce la contención pero no reemplaza el bloqueo de fila de la transacción.
type AssetLocker interface {
	Lock(ctx context.Context, assetID string) (release func(), err error)
}

// NoopLocker no bloquea nada; es el valor por defecto sin Redis.
type NoopLocker struct{}

// Lock implementa AssetLocker.
func (NoopLocker) Lock(context.Context, string) (func(), error) { return func() {}, nil }
