package app

import (
	"os"
	"time"
)

// Config описывает настройки запуска приложения.
// Пустой PostgresDSN или RedisAddr переключает соответствующий слой
// на in-memory реализацию — режим локальной разработки.
type Config struct {
	HTTPAddr    string
	MetricsAddr string

	PostgresDSN string
	RedisAddr   string

	JWTSecret string
	TokenTTL  time.Duration
	CacheTTL  time.Duration
}

// DefaultConfig возвращает базовые значения конфигурации.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:    ":8080",
		MetricsAddr: ":9090",
	}
}

// ReadConfig накладывает переменные окружения на значения по умолчанию.
func ReadConfig() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("LOGITRACK_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("LOGITRACK_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	cfg.PostgresDSN = os.Getenv("LOGITRACK_POSTGRES_DSN")
	cfg.RedisAddr = os.Getenv("LOGITRACK_REDIS_ADDR")
	cfg.JWTSecret = os.Getenv("LOGITRACK_JWT_SECRET")
	if v := os.Getenv("LOGITRACK_TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.TokenTTL = d
		}
	}
	if v := os.Getenv("LOGITRACK_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.CacheTTL = d
		}
	}
	return cfg
}
