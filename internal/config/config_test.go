package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "DB_DRIVER", "REDIS_HOST", "READ_TIMEOUT", "CACHE_TTL", "LOG_FILE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	assert.Equal(t, "app.log", cfg.LogFile)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.False(t, cfg.CacheEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", ":memory:")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("WRITE_TIMEOUT", "3")
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, ":memory:", cfg.SQLitePath)
	assert.True(t, cfg.CacheEnabled())
	assert.Equal(t, 3*time.Second, cfg.WriteTimeout)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestValidate(t *testing.T) {
	t.Setenv("DB_DRIVER", "mongo")
	_, err := Load()
	assert.ErrorContains(t, err, "unknown DB_DRIVER")

	t.Setenv("DB_DRIVER", "")
	t.Setenv("READ_TIMEOUT", "0")
	_, err = Load()
	assert.ErrorContains(t, err, "timeouts must be positive")
}
