package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/activos-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("APP_STORE", "memory")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StoreMemory, cfg.App.Store)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 30*time.Second, cfg.Redis.LockTTL)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Setenv("APP_STORE", "POSTGRES")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")
	t.Setenv("LOCK_TTL_SECONDS", "10")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StorePostgres, cfg.App.Store)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 10*time.Second, cfg.Redis.LockTTL)
}

func TestLoad_StoreDesconocido(t *testing.T) {
	t.Setenv("APP_STORE", "mongo")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_URLs(t *testing.T) {
	db := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss", DBName: "activos", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss@db:5432/activos?sslmode=disable", db.DSN())
	assert.Equal(t, "pgx5://app:p%40ss@db:5432/activos?sslmode=disable", db.MigrateURL())

	db.DatabaseURL = "postgresql://u:x@host:6543/db?sslmode=require"
	assert.Equal(t, "pgx5://u:x@host:6543/db?sslmode=require", db.MigrateURL())
}
