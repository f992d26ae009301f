package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackingMetrics_Counters(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := newTrackingMetricsWithRegisterer(registry)

	m.RecordCacheHit()
	m.RecordCacheHit()
	m.RecordCacheMiss()
	m.RecordCachePopulation()
	m.RecordInvalidation()
	m.RecordInvalidationFailure()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheMisses))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cachePopulations))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheInvalidations))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheInvalidationFailures))
}

func TestTrackingMetrics_DoubleRegistrationReusesCollectors(t *testing.T) {
	registry := prometheus.NewRegistry()
	first := newTrackingMetricsWithRegisterer(registry)
	second := newTrackingMetricsWithRegisterer(registry)

	first.RecordCacheHit()
	second.RecordCacheHit()

	// Повторная регистрация возвращает существующие коллекторы.
	assert.Equal(t, 2.0, testutil.ToFloat64(first.cacheHits))
}

func TestTrackingMetrics_NilReceiverIsSafe(t *testing.T) {
	var m *TrackingMetrics

	require.NotPanics(t, func() {
		m.RecordCacheHit()
		m.RecordCacheMiss()
		m.RecordCachePopulation()
		m.RecordInvalidation()
		m.RecordInvalidationFailure()
		m.RecordLookupDuration(time.Millisecond)
		m.RecordHTTPRequest("GET", "/api/shipments", "200", time.Millisecond)
	})
}

func TestTrackingMetrics_HTTPHistogramLabels(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := newTrackingMetricsWithRegisterer(registry)

	m.RecordHTTPRequest("GET", "/api/shipments/tracking/:trackingNumber", "200", 10*time.Millisecond)
	m.RecordHTTPRequest("GET", "/api/shipments/tracking/:trackingNumber", "200", 20*time.Millisecond)

	count := testutil.CollectAndCount(m.httpDuration)
	assert.Equal(t, 1, count)
}
