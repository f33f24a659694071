package tracegate

import (
	"errors"
)

// ErrEmptyConfigFile is returned when an empty configuration file name is supplied.
var ErrEmptyConfigFile = errors.New("tracegate: config file name must not be empty")

// ErrInvalidReloadInterval is returned when a non-positive reload interval is supplied.
var ErrInvalidReloadInterval = errors.New("tracegate: reload interval must be positive")

// ErrNilClock is returned when a nil clock is supplied.
var ErrNilClock = errors.New("tracegate: clock must not be nil")

// ErrNilSource is returned when a nil configuration source is supplied.
var ErrNilSource = errors.New("tracegate: source must not be nil")

// ErrNilLogger is returned when a nil logger is supplied.
var ErrNilLogger = errors.New("tracegate: logger must not be nil")

// ErrNilMetrics is returned when a nil metrics collector is supplied.
var ErrNilMetrics = errors.New("tracegate: metrics collector must not be nil")
