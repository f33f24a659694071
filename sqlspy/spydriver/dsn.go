package spydriver

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// PassThroughPrefix marks an identifier whose rest is a standard "<driverName>:<dsn>" identifier.
	PassThroughPrefix = "sql:spy:"

	// ProviderPrefix marks an identifier that names the provider to initialise, as in
	// "sql:spy#<provider>:<rest>".
	ProviderPrefix = "sql:spy#"

	// LiteralMarker at the start of the rest means the rest is a DSN to hand to the provider's driver as it is.
	LiteralMarker = "-:"

	scheme = "sql:"
)

// Route is a parsed sqlspy identifier.
type Route struct {
	// Provider is the explicitly named provider, empty for the pass-through form.
	Provider string

	// Literal reports whether Target is a driver DSN rather than a standard identifier.
	Literal bool

	// Target is "sql:<driverName>:<dsn>", or the literal DSN when Literal is set.
	Target string
}

// DriverName returns the name of the driver the route delegates to: the provider for literal DSNs,
// otherwise the driver name of the standard identifier.
func (r Route) DriverName() string {
	if r.Literal {
		return r.Provider
	}

	name, _, _ := splitStandard(r.Target)

	return name
}

// Accepts reports whether id carries one of the two sqlspy markers.
func Accepts(id string) bool {
	return strings.HasPrefix(id, PassThroughPrefix) || strings.HasPrefix(id, ProviderPrefix)
}

// ParseRoute splits a sqlspy identifier into its route.
// Identifiers without a marker yield ErrNotMine, malformed ones ErrInvalidDSN.
func ParseRoute(id string) (Route, error) {
	var route Route
	var rest string

	switch {
	case strings.HasPrefix(id, PassThroughPrefix):
		rest = id[len(PassThroughPrefix):]

	case strings.HasPrefix(id, ProviderPrefix):
		provider, after, found := strings.Cut(id[len(ProviderPrefix):], ":")
		if !found || provider == "" {
			return Route{}, errors.Join(ErrInvalidDSN, fmt.Errorf("missing provider separator in %q", redact(id)))
		}

		route.Provider = provider
		rest = after

	default:
		return Route{}, ErrNotMine
	}

	if literal, ok := strings.CutPrefix(rest, LiteralMarker); ok {
		if route.Provider == "" {
			return Route{}, errors.Join(ErrInvalidDSN, errors.New("a literal DSN needs an explicit provider"))
		}

		route.Literal = true
		route.Target = literal

		return route, nil
	}

	route.Target = scheme + rest

	return route, nil
}

// splitStandard splits a standard identifier "sql:<driverName>:<dsn>".
func splitStandard(id string) (string, string, error) {
	rest, ok := strings.CutPrefix(id, scheme)
	if !ok {
		return "", "", errors.Join(ErrInvalidDSN, fmt.Errorf("%q does not start with %q", redact(id), scheme))
	}

	name, dsn, found := strings.Cut(rest, ":")
	if !found || name == "" {
		return "", "", errors.Join(ErrInvalidDSN, fmt.Errorf("missing driver name in %q", redact(id)))
	}

	return name, dsn, nil
}

// redact keeps identifiers in errors short of their DSN, which often holds credentials.
func redact(id string) string {
	if i := strings.LastIndex(id, ":"); i >= 0 {
		return id[:i+1] + "…"
	}

	return id
}
