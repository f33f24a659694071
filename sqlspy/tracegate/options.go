package tracegate

import (
	"time"

	"github.com/AntonStoeckl/sqlspy-go/sqlspy"
)

// Option defines a functional option for configuring a Gate.
type Option func(*Gate) error

// WithConfigFile reads the configuration from the properties file at path.
func WithConfigFile(path string) Option {
	return func(g *Gate) error {
		if path == "" {
			return ErrEmptyConfigFile
		}

		g.source = FileSource(path)

		return nil
	}
}

// WithSource reads the configuration from source instead of a file.
func WithSource(source Source) Option {
	return func(g *Gate) error {
		if source == nil {
			return ErrNilSource
		}

		g.source = source

		return nil
	}
}

// WithReloadInterval sets the minimum time between two reads of the configuration source.
func WithReloadInterval(interval time.Duration) Option {
	return func(g *Gate) error {
		if interval <= 0 {
			return ErrInvalidReloadInterval
		}

		g.interval = interval

		return nil
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) error {
		if now == nil {
			return ErrNilClock
		}

		g.now = now

		return nil
	}
}

// WithLogger sets the logger that receives configuration warnings and pattern changes.
func WithLogger(logger sqlspy.Logger) Option {
	return func(g *Gate) error {
		if logger == nil {
			return ErrNilLogger
		}

		g.logger = logger

		return nil
	}
}

// WithMetrics records the MetricTrapEnabled gauge after every reload of the configuration.
func WithMetrics(collector sqlspy.MetricsCollector) Option {
	return func(g *Gate) error {
		if collector == nil {
			return ErrNilMetrics
		}

		g.metrics = collector

		return nil
	}
}
