package spy

import (
	"log/slog"
	"time"

	"github.com/AntonStoeckl/sqlspy-go/sqlspy"
)

const (
	// DefaultObjectTagKey is the logging-context key of the object tag.
	DefaultObjectTagKey = "spy_id"

	// DefaultDurationTagKey is the logging-context key of the call duration in milliseconds.
	DefaultDurationTagKey = "spy_duration_ms"
)

// Settings are the per-run decorator settings.
// An empty tag key disables writing that tag.
type Settings struct {
	ObjectTag   string
	DurationTag string
	Trap        bool
	Format      func(any) string
}

// DefaultSettings writes both tags, enables the trap and uses sqlspy.FormatArg.
func DefaultSettings() Settings {
	return Settings{
		ObjectTag:   DefaultObjectTagKey,
		DurationTag: DefaultDurationTagKey,
		Trap:        true,
		Format:      sqlspy.FormatArg,
	}
}

// Gate decides whether a call's primary argument triggers a stack-trace capture.
type Gate interface {
	Matches(text string) bool
}

// Option defines a functional option for configuring a Tracer.
type Option func(*Tracer) error

// WithHandler logs through handler. Logging-context tags are lifted into the records.
func WithHandler(handler slog.Handler) Option {
	return func(t *Tracer) error {
		if handler == nil {
			return ErrNilLogger
		}

		s, err := newSlogSink(handler)
		if err != nil {
			return err
		}

		t.sink = s

		return nil
	}
}

// WithLogger logs through the handler of logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracer) error {
		if logger == nil {
			return ErrNilLogger
		}

		return WithHandler(logger.Handler())(t)
	}
}

// WithContextualLogger logs through a ContextualLogger, e.g. an OpenTelemetry bridge.
// Such a logger cannot report whether it is enabled, so call descriptions are always built, and the
// logging-context tags are passed as record arguments.
func WithContextualLogger(logger sqlspy.ContextualLogger) Option {
	return func(t *Tracer) error {
		if logger == nil {
			return ErrNilLogger
		}

		t.sink = contextualSink{logger: logger}

		return nil
	}
}

// WithLevel sets the level of call and trap records. Defaults to slog.LevelDebug.
func WithLevel(level slog.Level) Option {
	return func(t *Tracer) error {
		t.level = level
		return nil
	}
}

// WithGate sets the trap gate. Defaults to the process-wide tracegate.
func WithGate(gate Gate) Option {
	return func(t *Tracer) error {
		if gate == nil {
			return ErrNilGate
		}

		t.gate = gate

		return nil
	}
}

// WithMetrics sets the metrics collector.
// Call durations are recorded as sqlspy_call_duration_seconds, trap hits as sqlspy_trap_hits_total.
func WithMetrics(collector sqlspy.MetricsCollector) Option {
	return func(t *Tracer) error {
		if collector == nil {
			return ErrNilMetricsCollector
		}

		t.metrics = collector

		return nil
	}
}

// WithSettings replaces the decorator settings. A nil Format falls back to sqlspy.FormatArg.
func WithSettings(settings Settings) Option {
	return func(t *Tracer) error {
		if settings.Format == nil {
			settings.Format = sqlspy.FormatArg
		}

		t.settings = settings

		return nil
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracer) error {
		if now == nil {
			return ErrNilClock
		}

		t.now = now

		return nil
	}
}
