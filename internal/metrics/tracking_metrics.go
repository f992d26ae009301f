package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TrackingMetrics содержит метрики пути поиска по трек-номеру и HTTP-слоя.
type TrackingMetrics struct {
	// Счётчики работы кэша.
	cacheHits          prometheus.Counter
	cacheMisses        prometheus.Counter
	cachePopulations   prometheus.Counter
	cacheInvalidations prometheus.Counter
	// Инвалидации, завершившиеся ошибкой после успешной мутации хранилища;
	// каждая такая ошибка — риск устаревшего чтения до истечения TTL.
	cacheInvalidationFailures prometheus.Counter

	// Гистограмма времени поиска по трек-номеру.
	lookupDuration prometheus.Histogram

	// Гистограмма HTTP-запросов по маршруту/методу/статусу.
	httpDuration *prometheus.HistogramVec
}

// NewTrackingMetrics создаёт метрики в глобальном реестре Prometheus.
func NewTrackingMetrics() *TrackingMetrics {
	return newTrackingMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newTrackingMetricsWithRegisterer(registerer prometheus.Registerer) *TrackingMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &TrackingMetrics{
		cacheHits: registerCounter(registerer, prometheus.CounterOpts{
			Name: "logitrack_tracking_cache_hits_total",
			Help: "Total number of tracking lookups served from cache",
		}),
		cacheMisses: registerCounter(registerer, prometheus.CounterOpts{
			Name: "logitrack_tracking_cache_misses_total",
			Help: "Total number of tracking lookups that fell through to the store",
		}),
		cachePopulations: registerCounter(registerer, prometheus.CounterOpts{
			Name: "logitrack_tracking_cache_populations_total",
			Help: "Total number of tracking cache entries written after a miss",
		}),
		cacheInvalidations: registerCounter(registerer, prometheus.CounterOpts{
			Name: "logitrack_tracking_cache_invalidations_total",
			Help: "Total number of tracking cache keys invalidated by mutations",
		}),
		cacheInvalidationFailures: registerCounter(registerer, prometheus.CounterOpts{
			Name: "logitrack_tracking_cache_invalidation_failures_total",
			Help: "Total number of cache invalidations that failed after a successful store mutation",
		}),
		lookupDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "logitrack_tracking_lookup_duration_seconds",
			Help:    "Duration of tracking number lookups in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		}),
		httpDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "logitrack_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

// RecordCacheHit увеличивает счётчик попаданий в кэш.
func (m *TrackingMetrics) RecordCacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

// RecordCacheMiss увеличивает счётчик промахов кэша.
func (m *TrackingMetrics) RecordCacheMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}

// RecordCachePopulation увеличивает счётчик записей в кэш после промаха.
func (m *TrackingMetrics) RecordCachePopulation() {
	if m == nil {
		return
	}
	m.cachePopulations.Inc()
}

// RecordInvalidation увеличивает счётчик инвалидаций.
func (m *TrackingMetrics) RecordInvalidation() {
	if m == nil {
		return
	}
	m.cacheInvalidations.Inc()
}

// RecordInvalidationFailure увеличивает счётчик неудачных инвалидаций.
func (m *TrackingMetrics) RecordInvalidationFailure() {
	if m == nil {
		return
	}
	m.cacheInvalidationFailures.Inc()
}

// RecordLookupDuration записывает время поиска по трек-номеру.
func (m *TrackingMetrics) RecordLookupDuration(duration time.Duration) {
	if m == nil {
		return
	}
	m.lookupDuration.Observe(duration.Seconds())
}

// RecordHTTPRequest записывает время обработки HTTP-запроса.
func (m *TrackingMetrics) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}
