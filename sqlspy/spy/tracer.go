package spy

import (
	"log/slog"
	"sync"
	"time"

	"github.com/AntonStoeckl/sqlspy-go/sqlspy"
	"github.com/AntonStoeckl/sqlspy-go/sqlspy/tracegate"
)

// Tracer carries the shared state of a family of decorators.
// A Tracer is immutable after construction and safe for concurrent use.
type Tracer struct {
	sink     sink
	level    slog.Level
	gate     Gate
	metrics  sqlspy.MetricsCollector
	settings Settings
	now      func() time.Time
}

// NewTracer creates a Tracer. Without options it logs at debug level through slog.Default,
// writes both logging-context tags and asks the process-wide trace gate.
func NewTracer(options ...Option) (*Tracer, error) {
	t := &Tracer{
		level:    slog.LevelDebug,
		settings: DefaultSettings(),
		now:      time.Now,
	}

	for _, option := range options {
		if err := option(t); err != nil {
			return nil, err
		}
	}

	if t.sink == nil {
		s, err := newSlogSink(slog.Default().Handler())
		if err != nil {
			return nil, err
		}

		t.sink = s
	}

	if t.gate == nil {
		t.gate = tracegate.Default()
	}

	return t, nil
}

var defaultTracer = sync.OnceValue(func() *Tracer {
	t, err := NewTracer()
	if err != nil {
		panic(err)
	}

	return t
})

// Default returns the process-wide Tracer used when no options are given.
func Default() *Tracer {
	return defaultTracer()
}

// Settings returns the decorator settings.
func (t *Tracer) Settings() Settings {
	return t.settings
}

// Level returns the level of call and trap records.
func (t *Tracer) Level() slog.Level {
	return t.level
}
