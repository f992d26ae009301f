package memory

import (
	"context"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/logitrack/internal/domain"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// Cache — in-memory реализация domain.Cache с TTL
// для локальной разработки и тестов.
type Cache struct {
	mu    sync.RWMutex
	items map[string]entry
}

// NewCache возвращает пустой in-memory кэш.
func NewCache() *Cache {
	return &Cache{items: make(map[string]entry)}
}

func (c *Cache) Get(_ context.Context, key string) (string, error) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		return "", domain.ErrCacheMiss
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		// Ленивое вытеснение: просроченный ключ удаляется при чтении.
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return "", domain.ErrCacheMiss
	}
	return e.value, nil
}

func (c *Cache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	c.mu.Lock()
	c.items[key] = entry{value: value, expiresAt: expiresAt}
	c.mu.Unlock()
	return nil
}

func (c *Cache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
	return nil
}

// Len возвращает количество живых ключей; используется в тестах.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

var _ domain.Cache = (*Cache)(nil)
