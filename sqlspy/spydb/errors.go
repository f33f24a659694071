package spydb

import (
	"errors"
)

// ErrNilPool is returned when a nil pgx pool is supplied.
var ErrNilPool = errors.New("spydb: pool must not be nil")

// ErrNilConnector is returned when a nil connector is supplied.
var ErrNilConnector = errors.New("spydb: connector must not be nil")
