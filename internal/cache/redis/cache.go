package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vladislavdragonenkov/logitrack/internal/domain"
)

const defaultOpTimeout = 2 * time.Second

// Cache — реализация domain.Cache поверх Redis.
// Подключение создаётся один раз при старте процесса и внедряется туда,
// где нужен кэш; клиент сам управляет пулом и таймаутами соединений.
type Cache struct {
	client *redis.Client
}

// Open создаёт клиента Redis и проверяет доступность сервера.
func Open(ctx context.Context, addr string) (*Cache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	pingCtx, cancel := context.WithTimeout(ctx, defaultOpTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Cache{client: client}, nil
}

// Get возвращает значение ключа или ErrCacheMiss, если ключа нет.
// Прочие ошибки — сбой кэша; решение, фатален ли он, принимает вызывающий.
func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrCacheMiss
		}
		return "", fmt.Errorf("redis get %q: %w", key, err)
	}
	return value, nil
}

// Set записывает значение с TTL.
func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Delete удаляет ключ; отсутствие ключа не является ошибкой.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}

// Ping проверяет доступность Redis для health-проверок.
func (c *Cache) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, defaultOpTimeout)
	defer cancel()
	return c.client.Ping(pingCtx).Err()
}

// Close закрывает подключение.
func (c *Cache) Close() error {
	return c.client.Close()
}

var _ domain.Cache = (*Cache)(nil)
