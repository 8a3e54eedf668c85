package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 50.0, cfg.RateLimit.RPS)
	assert.Equal(t, 100, cfg.RateLimit.Burst)
	assert.Equal(t, 500.0, cfg.RateLimit.GlobalRPS)
	assert.Equal(t, 1000, cfg.RateLimit.GlobalBurst)
	assert.False(t, cfg.RateLimit.TrustProxy)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10000, cfg.BatchMaxRows)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("SERVER_SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("BATCH_MAX_ROWS", "not-a-number")
	t.Setenv("RATE_LIMIT_TRUST_PROXY", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2.5, cfg.RateLimit.RPS)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 10000, cfg.BatchMaxRows)
	assert.True(t, cfg.RateLimit.TrustProxy)
}

func TestLoadRejectsNonPositive(t *testing.T) {
	tests := map[string]string{
		"RATE_LIMIT_RPS":          "0",
		"RATE_LIMIT_BURST":        "-1",
		"RATE_LIMIT_GLOBAL_RPS":   "0",
		"RATE_LIMIT_GLOBAL_BURST": "-3",
		"SERVER_READ_TIMEOUT":     "-5s",
		"BATCH_MAX_ROWS":          "0",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
