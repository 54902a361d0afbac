package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000")
	t.Setenv("DB_DRIVER", "postgres")

	cfg := Load()

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "http://localhost:3000", cfg.AllowedOrigins)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.True(t, cfg.PatchZeroAsAbsent)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_MAX_OPEN_CONNS", "7")
	t.Setenv("PATCH_ZERO_AS_ABSENT", "false")
	t.Setenv("NATS_URL", "nats://broker:4222")

	cfg := Load()

	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 7, cfg.DBMaxOpenConns)
	assert.False(t, cfg.PatchZeroAsAbsent)
	assert.Equal(t, "nats://broker:4222", cfg.NatsURL)
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("DB_MAX_IDLE_CONNS", "lots")
	t.Setenv("PATCH_ZERO_AS_ABSENT", "maybe")

	cfg := Load()

	assert.Equal(t, 10, cfg.DBMaxIdleConns)
	assert.True(t, cfg.PatchZeroAsAbsent)
}
