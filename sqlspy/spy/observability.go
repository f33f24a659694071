package spy

import (
	"context"
	"math"
	"time"

	"github.com/AntonStoeckl/sqlspy-go/sqlspy"
)

const (
	metricCallDuration = "sqlspy_call_duration_seconds"
	metricTrapHits     = "sqlspy_trap_hits_total"

	labelInterface = "interface"
	labelMethod    = "method"
	labelStatus    = "status"

	statusSuccess = "success"
	statusError   = "error"
	statusPanic   = "panic"
)

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

// recordDuration records the call duration if a metrics collector is configured.
func (t *Tracer) recordDuration(ctx context.Context, iface, method, status string, duration time.Duration) {
	if t.metrics == nil {
		return
	}

	labels := map[string]string{
		labelInterface: iface,
		labelMethod:    method,
		labelStatus:    status,
	}

	if contextual, ok := t.metrics.(sqlspy.ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(ctx, metricCallDuration, duration, labels)
		return
	}

	t.metrics.RecordDuration(metricCallDuration, duration, labels)
}

// recordTrapHit counts a trap match if a metrics collector is configured.
func (t *Tracer) recordTrapHit(ctx context.Context, iface, method string) {
	if t.metrics == nil {
		return
	}

	labels := map[string]string{
		labelInterface: iface,
		labelMethod:    method,
	}

	if contextual, ok := t.metrics.(sqlspy.ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(ctx, metricTrapHits, labels)
		return
	}

	t.metrics.IncrementCounter(metricTrapHits, labels)
}
