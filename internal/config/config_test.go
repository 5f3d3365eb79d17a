package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"STORAGE_BACKEND", "SQLITE_PATH", "APP_TIMEZONE", "REDIS_URL",
		"JWT_SECRET", "BUFFER_ENABLED", "BOLTDB_PATH", "SEED_QUOTES",
		"REQUEST_TIMEOUT_SECONDS", "DATABASE_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageSQLite, cfg.Storage.Backend)
	assert.False(t, cfg.RedisEnabled())
	assert.False(t, cfg.AuthEnabled())
	assert.True(t, cfg.Buffer.Enabled)
	assert.True(t, cfg.Quotes.Seed)
	assert.Equal(t, 5*time.Second, cfg.Context.RequestTimeout)
	assert.Contains(t, cfg.Database.URL, "postgres://")

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_BACKEND", "Postgres")
	t.Setenv("APP_TIMEZONE", "UTC")
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "9")
	t.Setenv("SEED_QUOTES", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoragePostgres, cfg.Storage.Backend)
	assert.True(t, cfg.RedisEnabled())
	assert.False(t, cfg.Quotes.Seed)
	assert.Equal(t, 9*time.Second, cfg.Context.RequestTimeout)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestValidateRejectsBadSettings(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_BACKEND", "mongo")
	_, err := Load()
	assert.ErrorContains(t, err, "STORAGE_BACKEND")

	clearEnv(t)
	t.Setenv("APP_TIMEZONE", "Mars/Olympus_Mons")
	_, err = Load()
	assert.ErrorContains(t, err, "APP_TIMEZONE")
}
