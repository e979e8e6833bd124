package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasktrack/tasktrack-api/internal/config"
)

const testSecret = "environment-secret-32-chars-long!!!"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TASKTRACK_DATABASE_URL", "postgres://tasktrack:pw@localhost:5432/tasktrack")
	t.Setenv("TASKTRACK_AUTH_JWT_SECRET", testSecret)
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.False(t, cfg.Server.IsProduction())
	assert.Equal(t, 7*24*60, cfg.Auth.TokenLifetimeMinutes)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, testSecret, cfg.Auth.JWTSecret)
}

func TestLoadEnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TASKTRACK_SERVER_PORT", "9090")
	t.Setenv("TASKTRACK_SERVER_LOG_LEVEL", "debug")
	t.Setenv("TASKTRACK_SERVER_ENV", "production")
	t.Setenv("TASKTRACK_AUTH_TOKEN_LIFETIME_MINUTES", "60")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.True(t, cfg.Server.IsProduction())
	assert.Equal(t, 60, cfg.Auth.TokenLifetimeMinutes)
}

func TestLoadValidation(t *testing.T) {
	t.Run("missing database URL", func(t *testing.T) {
		t.Setenv("TASKTRACK_DATABASE_URL", "")
		t.Setenv("TASKTRACK_AUTH_JWT_SECRET", testSecret)

		_, err := config.Load()
		assert.Error(t, err)
	})

	t.Run("short JWT secret", func(t *testing.T) {
		t.Setenv("TASKTRACK_DATABASE_URL", "postgres://localhost/tasktrack")
		t.Setenv("TASKTRACK_AUTH_JWT_SECRET", "too-short")

		_, err := config.Load()
		assert.Error(t, err)
	})

	t.Run("unrecognized log level", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("TASKTRACK_SERVER_LOG_LEVEL", "verbose")

		_, err := config.Load()
		assert.Error(t, err)
	})

	t.Run("unrecognized environment", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("TASKTRACK_SERVER_ENV", "staging")

		_, err := config.Load()
		assert.Error(t, err)
	})
}
