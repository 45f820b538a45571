// Package redislock candado por activo entre instancias del servicio, sobre Redis.
// Es de mejor esfuerzo: si Redis no responde o el candado no se obtiene a tiempo la operación
// sigue y la serializa el bloqueo de fila de la transacción.
package redislock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/activos-api/internal/application/inventory"
	"github.com/jhoicas/activos-api/pkg/config"
	"github.com/jhoicas/activos-api/pkg/logger"
)

var _ inventory.AssetLocker = (*Locker)(nil)

// Locker implementa inventory.AssetLocker con bsm/redislock.
type Locker struct {
	client  *redislock.Client
	ttl     time.Duration
	retries int
	log     *logger.Logger
}

// NewClient crea el cliente go-redis desde la configuración.
func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// New construye el candado. ttl acota cuánto puede quedar tomado si la instancia muere.
func New(rdb redis.UniversalClient, ttl time.Duration, log *logger.Logger) *Locker {
	return &Locker{client: redislock.New(rdb), ttl: ttl, retries: 20, log: log}
}

// Key clave del candado de un activo.
func Key(assetID string) string {
	return fmt.Sprintf("lock:asset:%s", assetID)
}

// Lock intenta tomar el candado del activo reintentando con backoff lineal.
func (l *Locker) Lock(ctx context.Context, assetID string) (func(), error) {
	opts := &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(50*time.Millisecond), l.retries),
	}
	lock, err := l.client.Obtain(ctx, Key(assetID), l.ttl, opts)
	switch {
	case err == nil:
		return func() {
			// El contexto de la petición puede estar cancelado al liberar.
			if err := lock.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
				l.log.Warn().Err(err).Str("asset_id", assetID).Msg("no se pudo liberar el candado")
			}
		}, nil
	case ctx.Err() != nil:
		return nil, ctx.Err()
	case errors.Is(err, redislock.ErrNotObtained):
		l.log.Warn().Str("asset_id", assetID).Msg("candado ocupado; se continúa con el bloqueo de fila")
	default:
		l.log.Warn().Err(err).Str("asset_id", assetID).Msg("redis no disponible; se continúa sin candado")
	}
	return func() {}, nil
}
