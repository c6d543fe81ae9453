package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "redis")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StoreRedis, cfg.StoreBackend)
	assert.Equal(t, "jack", cfg.WakeWord)
	assert.Equal(t, 3*time.Minute, cfg.StationRefreshInterval)
	assert.Equal(t, 30*time.Second, cfg.SirenInterval)
	assert.Equal(t, 0.05, cfg.StationSearchDelta)
}

func TestLoadConfig_PostgresRequiresDatabaseURL(t *testing.T) {
	t.Setenv("STORE_BACKEND", "Postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/sos")
	t.Setenv("STATION_REFRESH_INTERVAL", "90s")
	t.Setenv("API_KEYS", " a , b ")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.StationRefreshInterval)
	assert.Equal(t, []string{"a", "b"}, cfg.APIKeys)
	assert.Equal(t, 0, cfg.RedisDB)
}

func TestValidate_UnknownBackend(t *testing.T) {
	cfg := &Config{StoreBackend: "mongo", StationRefreshInterval: time.Minute, SirenInterval: time.Second}
	assert.Error(t, cfg.Validate())
}
