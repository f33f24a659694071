package generator

import (
	"errors"
)

// ErrInvalidConfig is returned for configurations that cannot drive a generation run.
var ErrInvalidConfig = errors.New("generator: invalid configuration")

// ErrMissingFallback is returned for facets without a fallback function.
var ErrMissingFallback = errors.New("generator: facet has no fallback")

// ErrReservedMethod is returned when an interface declares a method the decorator needs for itself.
var ErrReservedMethod = errors.New("generator: method name is reserved by the decorator")

// ErrMethodConflict is returned when a facet declares a method with the name but not the signature of
// another method of the decorator.
var ErrMethodConflict = errors.New("generator: conflicting method signatures")

// ErrInterfaceNotLoaded is returned when a referenced interface is missing from the loaded models.
var ErrInterfaceNotLoaded = errors.New("generator: interface not loaded")

// ErrNothingGenerated is returned by GenerateFile when every decorator failed.
var ErrNothingGenerated = errors.New("generator: no decorator could be generated")
