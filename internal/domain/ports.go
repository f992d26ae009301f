package domain

import (
	"context"
	"time"
)

// Cache — key-value хранилище с TTL для пути поиска по трек-номеру.
// Get возвращает ErrCacheMiss при отсутствии ключа; любая другая ошибка —
// это сбой кэша, и на пути чтения она фатальна (fail-closed).
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// TokenService выпускает и проверяет токены с удостоверением пользователя.
// Реализация (подпись, срок жизни) — забота auth-слоя, не домена.
type TokenService interface {
	Issue(claims Claims) (string, error)
	Validate(token string) (Claims, error)
}

// EventPublisher публикует доменные события наружу; публикация best-effort,
// её отказ не должен прерывать обработку запроса.
type EventPublisher interface {
	Publish(topic string, key string, event any) error
}
