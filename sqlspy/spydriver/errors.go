package spydriver

import (
	"errors"
)

// ErrNotMine is returned by Router.Connect for identifiers that carry no sqlspy marker.
// It signals that another driver should be asked and is never logged as a failure.
var ErrNotMine = errors.New("spydriver: identifier is not a sqlspy identifier")

// ErrInvalidDSN is returned for identifiers with a sqlspy marker that do not follow the grammar.
var ErrInvalidDSN = errors.New("spydriver: invalid sqlspy identifier")

// ErrUnknownProvider is returned when an explicit provider or a resolved driver name is not known.
var ErrUnknownProvider = errors.New("spydriver: unknown provider")

// ErrNilTable is returned when a nil decorator table is supplied.
var ErrNilTable = errors.New("spydriver: decorator table must not be nil")

// ErrNilResolver is returned when a nil resolver is supplied.
var ErrNilResolver = errors.New("spydriver: resolver must not be nil")

// ErrNilProviders is returned when a nil provider registry is supplied.
var ErrNilProviders = errors.New("spydriver: providers must not be nil")

// ErrNilLogger is returned when a nil logger is supplied.
var ErrNilLogger = errors.New("spydriver: logger must not be nil")

// ErrNonDefaultIsolation is returned by Conn.BeginTx when the wrapped connection cannot begin
// transactions with options and a non-default isolation level is requested.
var ErrNonDefaultIsolation = errors.New("spydriver: driver does not support non-default isolation level")

// ErrReadOnlyTx is returned by Conn.BeginTx when the wrapped connection cannot begin transactions
// with options and a read-only transaction is requested.
var ErrReadOnlyTx = errors.New("spydriver: driver does not support read-only transactions")

// ErrNamedParameters is returned by the context methods of Stmt when the wrapped statement
// only takes positional arguments and a named one is passed.
var ErrNamedParameters = errors.New("spydriver: driver does not support the use of named parameters")
