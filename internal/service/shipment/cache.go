package shipment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/logitrack/internal/domain"
	"github.com/vladislavdragonenkov/logitrack/internal/metrics"
)

const (
	// trackingKeyPrefix — префикс ключей кэша трекинга; формат ключа —
	// часть контракта с уже развёрнутыми инсталляциями, менять нельзя.
	trackingKeyPrefix = "shipment:tracking:"

	// DefaultTrackingTTL — срок жизни записи кэша трекинга.
	DefaultTrackingTTL = 3600 * time.Second
)

// TrackingCache реализует дисциплину write-through-invalidate для пути
// поиска по трек-номеру: промах чтения заполняет кэш, а каждая мутация,
// наблюдаемая через трекинг, удаляет ключ — но никогда не перезаписывает
// его свежим значением. Удаление вместо перезаписи исключает гонку, при
// которой в кэш попало бы значение старее конкурирующей второй мутации.
type TrackingCache struct {
	repo    domain.ShipmentRepository
	cache   domain.Cache
	ttl     time.Duration
	logger  *log.Entry
	metrics *metrics.TrackingMetrics
}

// NewTrackingCache конструирует координатор кэша.
// ttl <= 0 заменяется на DefaultTrackingTTL.
func NewTrackingCache(
	repo domain.ShipmentRepository,
	cache domain.Cache,
	ttl time.Duration,
	m *metrics.TrackingMetrics,
	logger *log.Entry,
) *TrackingCache {
	if ttl <= 0 {
		ttl = DefaultTrackingTTL
	}
	if logger == nil {
		logger = log.WithField("component", "tracking-cache")
	}
	return &TrackingCache{
		repo:    repo,
		cache:   cache,
		ttl:     ttl,
		logger:  logger,
		metrics: m,
	}
}

// trackingKey собирает ключ кэша для трек-номера.
func trackingKey(trackingNumber string) string {
	return trackingKeyPrefix + trackingNumber
}

// Lookup возвращает трекинг-представление по номеру.
// Попадание в кэш авторитетно до инвалидации или истечения TTL.
// Ошибка кэша на пути чтения фатальна (fail-closed): молчаливый обход
// кэша скрыл бы деградацию, поэтому сбой поднимается наверх.
func (tc *TrackingCache) Lookup(ctx context.Context, trackingNumber string) (domain.TrackingView, error) {
	started := time.Now()
	defer func() {
		tc.metrics.RecordLookupDuration(time.Since(started))
	}()

	key := trackingKey(trackingNumber)

	cached, err := tc.cache.Get(ctx, key)
	switch {
	case err == nil:
		tc.metrics.RecordCacheHit()
		var view domain.TrackingView
		if uerr := json.Unmarshal([]byte(cached), &view); uerr != nil {
			// Непригодная запись равносильна промаху: удаляем и идём в базу.
			tc.logger.WithError(uerr).WithField("key", key).Warn("corrupt cache entry, dropping")
			if derr := tc.cache.Delete(ctx, key); derr != nil {
				return domain.TrackingView{}, fmt.Errorf("drop corrupt cache entry: %w", derr)
			}
		} else {
			return view, nil
		}
	case errors.Is(err, domain.ErrCacheMiss):
		tc.metrics.RecordCacheMiss()
	default:
		return domain.TrackingView{}, fmt.Errorf("tracking cache read: %w", err)
	}

	view, err := tc.repo.FindByTracking(trackingNumber)
	if err != nil {
		// Ошибка или пустой результат: кэш не трогаем.
		return domain.TrackingView{}, err
	}

	payload, err := json.Marshal(view)
	if err != nil {
		return domain.TrackingView{}, fmt.Errorf("encode tracking view: %w", err)
	}
	if err := tc.cache.Set(ctx, key, string(payload), tc.ttl); err != nil {
		// Само представление уже получено из источника истины; неудачная
		// запись в кэш не делает ответ неверным, но её нужно видеть в логах.
		tc.logger.WithError(err).WithField("key", key).Warn("failed to populate tracking cache")
		return view, nil
	}
	tc.metrics.RecordCachePopulation()

	return view, nil
}

// Invalidate удаляет запись кэша для трек-номера. Вызывается сервисом на
// каждой мутации, наблюдаемой через трекинг; при смене самого трек-номера
// сервис обязан инвалидировать и старый, и новый ключ.
func (tc *TrackingCache) Invalidate(ctx context.Context, trackingNumber string) error {
	if trackingNumber == "" {
		return nil
	}

	key := trackingKey(trackingNumber)
	if err := tc.cache.Delete(ctx, key); err != nil {
		tc.metrics.RecordInvalidationFailure()
		return fmt.Errorf("invalidate tracking cache %q: %w", key, err)
	}
	tc.metrics.RecordInvalidation()
	return nil
}

// TTL возвращает действующий срок жизни записей; используется в тестах.
func (tc *TrackingCache) TTL() time.Duration {
	return tc.ttl
}
