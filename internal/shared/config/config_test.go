package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"szabo-data/inkwell/internal/shared/config"
)

func TestDefaults(t *testing.T) {
	cfg, err := config.NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, "http://localhost:8080/api", cfg.APIBaseURL)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "inkwell_session", cfg.SessionCookie)
	assert.Equal(t, 168*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.CookieSecure)
	assert.False(t, cfg.IsEnvProd())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "4000")
	t.Setenv("API_BASE_URL", "https://blog.internal/api")
	t.Setenv("SESSION_TTL", "24h")

	cfg, err := config.NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, "https://blog.internal/api", cfg.APIBaseURL)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
}

func TestIsEnvProdNeedsBothFlags(t *testing.T) {
	t.Setenv("ENVIRONMENT", "prod")
	cfg, err := config.NewConfig()
	require.NoError(t, err)
	assert.False(t, cfg.IsEnvProd())

	t.Setenv("SENTRY_DSN", "https://example@sentry.invalid/1")
	cfg, err = config.NewConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsEnvProd())
}
