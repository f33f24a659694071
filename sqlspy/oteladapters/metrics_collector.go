package oteladapters

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/AntonStoeckl/sqlspy-go/sqlspy"
)

// MetricsCollector implements sqlspy.MetricsCollector using the OpenTelemetry metrics API:
//   - RecordDuration -> Histogram in seconds, e.g. sqlspy_call_duration_seconds
//   - IncrementCounter -> Counter, e.g. sqlspy_trap_hits_total
//   - RecordValue -> Gauge
//
// Instruments are created on first use. A MetricsCollector is safe for concurrent use.
type MetricsCollector struct {
	meter      metric.Meter
	mu         sync.RWMutex
	histograms map[string]metric.Float64Histogram
	counters   map[string]metric.Int64Counter
	gauges     map[string]metric.Float64Gauge
}

// NewMetricsCollector creates a collector whose instruments come from meter.
func NewMetricsCollector(meter metric.Meter) *MetricsCollector {
	return &MetricsCollector{
		meter:      meter,
		histograms: make(map[string]metric.Float64Histogram),
		counters:   make(map[string]metric.Int64Counter),
		gauges:     make(map[string]metric.Float64Gauge),
	}
}

// RecordDuration records a duration measurement using an OpenTelemetry histogram.
func (m *MetricsCollector) RecordDuration(metricName string, duration time.Duration, labels map[string]string) {
	m.RecordDurationContext(context.Background(), metricName, duration, labels)
}

// RecordDurationContext records a duration measurement with context for trace correlation.
func (m *MetricsCollector) RecordDurationContext(ctx context.Context, metricName string, duration time.Duration, labels map[string]string) {
	histogram := m.histogram(metricName)
	if histogram == nil {
		return
	}

	histogram.Record(ctx, duration.Seconds(), metric.WithAttributes(attributes(labels)...))
}

// IncrementCounter increments an OpenTelemetry counter.
func (m *MetricsCollector) IncrementCounter(metricName string, labels map[string]string) {
	m.IncrementCounterContext(context.Background(), metricName, labels)
}

// IncrementCounterContext increments a counter with context for trace correlation.
func (m *MetricsCollector) IncrementCounterContext(ctx context.Context, metricName string, labels map[string]string) {
	counter := m.counter(metricName)
	if counter == nil {
		return
	}

	counter.Add(ctx, 1, metric.WithAttributes(attributes(labels)...))
}

// RecordValue records a float64 value using an OpenTelemetry gauge.
func (m *MetricsCollector) RecordValue(metricName string, value float64, labels map[string]string) {
	m.RecordValueContext(context.Background(), metricName, value, labels)
}

// RecordValueContext records a float64 value with context for trace correlation.
func (m *MetricsCollector) RecordValueContext(ctx context.Context, metricName string, value float64, labels map[string]string) {
	gauge := m.gauge(metricName)
	if gauge == nil {
		return
	}

	gauge.Record(ctx, value, metric.WithAttributes(attributes(labels)...))
}

func attributes(labels map[string]string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(labels))
	for key, value := range labels {
		attrs = append(attrs, attribute.String(key, value))
	}

	return attrs
}

// instrument returns the cached instrument for name or creates and caches it.
// A creation failure yields the zero value, and the measurement is dropped.
func instrument[T any](m *MetricsCollector, cache map[string]T, name string, create func() (T, error)) T {
	m.mu.RLock()
	existing, ok := cache[name]
	m.mu.RUnlock()

	if ok {
		return existing
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok = cache[name]; ok {
		return existing
	}

	created, err := create()
	if err != nil {
		var zero T
		return zero
	}

	cache[name] = created

	return created
}

func (m *MetricsCollector) histogram(name string) metric.Float64Histogram {
	return instrument(m, m.histograms, name, func() (metric.Float64Histogram, error) {
		return m.meter.Float64Histogram(name,
			metric.WithDescription("sqlspy call duration"),
			metric.WithUnit("s"),
		)
	})
}

func (m *MetricsCollector) counter(name string) metric.Int64Counter {
	return instrument(m, m.counters, name, func() (metric.Int64Counter, error) {
		return m.meter.Int64Counter(name, metric.WithDescription("sqlspy event counter"))
	})
}

func (m *MetricsCollector) gauge(name string) metric.Float64Gauge {
	return instrument(m, m.gauges, name, func() (metric.Float64Gauge, error) {
		return m.meter.Float64Gauge(name, metric.WithDescription("sqlspy current value"))
	})
}

// Ensure MetricsCollector implements sqlspy.ContextualMetricsCollector.
var _ sqlspy.ContextualMetricsCollector = (*MetricsCollector)(nil)
