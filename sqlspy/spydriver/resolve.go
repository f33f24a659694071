package spydriver

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"slices"
)

// Resolver turns a standard identifier "sql:<driverName>:<dsn>" into the driver to use and the DSN
// to open it with.
type Resolver interface {
	Resolve(id string) (driver.Driver, string, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(id string) (driver.Driver, string, error)

// Resolve calls f.
func (f ResolverFunc) Resolve(id string) (driver.Driver, string, error) {
	return f(id)
}

// RegistryResolver resolves driver names through the database/sql driver registry.
type RegistryResolver struct{}

// Resolve looks up the driver registered under the identifier's driver name.
func (RegistryResolver) Resolve(id string) (driver.Driver, string, error) {
	name, dsn, err := splitStandard(id)
	if err != nil {
		return nil, "", err
	}

	if name == DriverName {
		return nil, "", errors.Join(ErrInvalidDSN, errors.New("sqlspy cannot route to itself"))
	}

	if !slices.Contains(sql.Drivers(), name) {
		return nil, "", errors.Join(ErrUnknownProvider, fmt.Errorf("driver %q is not registered", name))
	}

	// database/sql offers no lookup by name, but sql.Open does not connect
	db, err := sql.Open(name, dsn)
	if err != nil {
		return nil, "", err
	}

	drv := db.Driver()
	_ = db.Close()

	return drv, dsn, nil
}
