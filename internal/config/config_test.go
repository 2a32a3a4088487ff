package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"APP_PORT", "APP_HOST", "AUTH_BCRYPT_COST", "AUTH_BOOTSTRAP_USERNAME",
		"AUTH_ACCESS_TOKEN_TTL_MINUTES", "AUTH_SCOPE_CACHE_TTL_SECONDS", "REDIS_DB",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8000", cfg.App.Addr())
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, "admin", cfg.Auth.BootstrapUsername)
	assert.Equal(t, 60, cfg.Auth.AccessTokenTTLMinutes)
	assert.Equal(t, time.Minute, cfg.Auth.ScopeCacheTTL())
	assert.True(t, cfg.Postgres.RunMigrations)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_HOST", "127.0.0.1")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("AUTH_BCRYPT_COST", "12")
	t.Setenv("AUTH_SCOPE_CACHE_TTL_SECONDS", "0")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.App.Addr())
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, time.Duration(0), cfg.Auth.ScopeCacheTTL())
	assert.False(t, cfg.Postgres.RunMigrations)
}

func TestLoadRejectsBadRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}

func TestRequestTimeout(t *testing.T) {
	app := AppConfig{RequestTimeoutSeconds: 15}
	assert.Equal(t, 15*time.Second, app.RequestTimeout())

	app.RequestTimeoutSeconds = 0
	assert.Equal(t, time.Duration(0), app.RequestTimeout())
}
