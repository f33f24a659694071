package sqlspy

import (
	"errors"
)

// ErrNilHandler is returned when a nil base handler is supplied to a handler decorator.
var ErrNilHandler = errors.New("sqlspy: base handler is nil")

// ErrConnectFailed is the single error kind for routing and wrapping failures while connecting.
// The root cause is joined to it, so errors.Is works for both.
var ErrConnectFailed = errors.New("sqlspy: could not connect")
