package redislock_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/activos-api/internal/infrastructure/redislock"
	"github.com/jhoicas/activos-api/pkg/logger"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "lock:asset:a1", redislock.Key("a1"))
}

// Sin Redis el candado no bloquea la operación.
func TestLock_RedisNoDisponible(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	defer rdb.Close()
	l := redislock.New(rdb, time.Second, logger.Nop())

	release, err := l.Lock(context.Background(), "a1")
	require.NoError(t, err)
	require.NotNil(t, release)
	assert.NotPanics(t, release)
}

func TestLock_ContextoCancelado(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	defer rdb.Close()
	l := redislock.New(rdb, time.Second, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := l.Lock(ctx, "a1")
	assert.ErrorIs(t, err, context.Canceled)
}
