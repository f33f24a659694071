package spy

import (
	"errors"
)

// ErrNoDecorator is returned by Table.Wrap when no decorator is registered for an interface.
var ErrNoDecorator = errors.New("spy: no decorator registered for interface")

// ErrNotImplemented is returned by Table.Wrap when the value does not implement the requested interface.
var ErrNotImplemented = errors.New("spy: value does not implement interface")

// ErrNilLogger is returned when a nil logger or handler is supplied.
var ErrNilLogger = errors.New("spy: logger must not be nil")

// ErrNilGate is returned when a nil gate is supplied.
var ErrNilGate = errors.New("spy: gate must not be nil")

// ErrNilMetricsCollector is returned when a nil metrics collector is supplied.
var ErrNilMetricsCollector = errors.New("spy: metrics collector must not be nil")

// ErrNilClock is returned when a nil clock is supplied.
var ErrNilClock = errors.New("spy: clock must not be nil")
