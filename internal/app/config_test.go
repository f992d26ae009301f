package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Empty(t, cfg.PostgresDSN)
	assert.Empty(t, cfg.RedisAddr)
}

func TestReadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("LOGITRACK_HTTP_ADDR", ":8181")
	t.Setenv("LOGITRACK_METRICS_ADDR", ":9191")
	t.Setenv("LOGITRACK_POSTGRES_DSN", "postgres://localhost/logitrack")
	t.Setenv("LOGITRACK_REDIS_ADDR", "localhost:6379")
	t.Setenv("LOGITRACK_JWT_SECRET", "secret")
	t.Setenv("LOGITRACK_TOKEN_TTL", "30m")
	t.Setenv("LOGITRACK_CACHE_TTL", "10m")

	cfg := ReadConfig()
	assert.Equal(t, ":8181", cfg.HTTPAddr)
	assert.Equal(t, ":9191", cfg.MetricsAddr)
	assert.Equal(t, "postgres://localhost/logitrack", cfg.PostgresDSN)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "secret", cfg.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
}

func TestReadConfig_IgnoresBadDurations(t *testing.T) {
	t.Setenv("LOGITRACK_TOKEN_TTL", "not-a-duration")

	cfg := ReadConfig()
	assert.Zero(t, cfg.TokenTTL)
}
