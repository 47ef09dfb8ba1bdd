package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV", "development")

	cfg := Load()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 12, cfg.Security.BcryptCost)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 5, cfg.RateLimit.MaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.Database.ConnectMaxElapsed)
	assert.False(t, cfg.Seed.OnStartup)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOGIN_RATE_LIMIT_WINDOW", "1m")
	t.Setenv("EMAIL_WORKER_ENABLED", "false")
	t.Setenv("SEED_FACTORS_FILE", "/etc/factors.yaml")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")

	cfg := Load()

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.False(t, cfg.Email.WorkerEnabled)
	assert.Equal(t, "/etc/factors.yaml", cfg.Seed.File)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
}

func TestLoad_TestEnvironmentDisablesRateLimit(t *testing.T) {
	for _, env := range []string{"test", "e2e"} {
		t.Run(env, func(t *testing.T) {
			t.Setenv("ENV", env)

			cfg := Load()

			assert.True(t, cfg.Server.IsTest())
			assert.False(t, cfg.RateLimit.Enabled)
		})
	}

	t.Run("E2E_MODE", func(t *testing.T) {
		t.Setenv("ENV", "development")
		t.Setenv("E2E_MODE", "true")

		assert.False(t, Load().RateLimit.Enabled)
	})
}
