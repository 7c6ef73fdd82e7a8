package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("SESSION_TTL_MINUTES", "not-a-number")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("REDIS_URL", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 10, cfg.App.BodyLimitMB)
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Empty(t, cfg.Broker.RedisURL)
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("FLAG_ON", "1")
	t.Setenv("FLAG_BAD", "maybe")

	assert.True(t, getEnvAsBool("FLAG_ON", false))
	assert.True(t, getEnvAsBool("FLAG_BAD", true))
	assert.False(t, getEnvAsBool("FLAG_UNSET_FOR_TEST", false))
}
