package spydriver

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
)

// Built-in provider names. They equal the names the drivers register with database/sql.
const (
	ProviderPostgres = "postgres"
	ProviderPGX      = "pgx"
)

// Providers is a registry of drivers that can be initialised by name.
// It is safe for concurrent use.
type Providers struct {
	mu      sync.Mutex
	entries map[string]*provider
}

type provider struct {
	once      sync.Once
	newDriver func() driver.Driver
	drv       driver.Driver
}

// NewProviders creates an empty registry.
func NewProviders() *Providers {
	return &Providers{entries: make(map[string]*provider)}
}

// DefaultProviders creates a registry with the built-in providers: lib/pq as "postgres" and the pgx
// database/sql driver as "pgx".
func DefaultProviders() *Providers {
	p := NewProviders()
	p.Add(ProviderPostgres, func() driver.Driver { return &pq.Driver{} })
	p.Add(ProviderPGX, func() driver.Driver { return stdlib.GetDefaultDriver() })

	return p
}

// Add makes newDriver available under name. Adding a name twice replaces the earlier entry
// unless it was initialised already.
func (p *Providers) Add(name string, newDriver func() driver.Driver) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if existing, ok := p.entries[name]; ok && existing.drv != nil {
		return
	}

	p.entries[name] = &provider{newDriver: newDriver}
}

// Names returns the provider names, sorted.
func (p *Providers) Names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	names := make([]string, 0, len(p.entries))
	for name := range p.entries {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

// Init initialises the provider name exactly once and returns its driver.
// The driver is registered with database/sql under name unless a driver of that name exists already.
func (p *Providers) Init(name string) (driver.Driver, error) {
	p.mu.Lock()
	entry, ok := p.entries[name]
	p.mu.Unlock()

	if !ok {
		return nil, errors.Join(ErrUnknownProvider, fmt.Errorf("provider %q", name))
	}

	entry.once.Do(func() {
		drv := entry.newDriver()

		if !slices.Contains(sql.Drivers(), name) {
			sql.Register(name, drv)
		}

		p.mu.Lock()
		entry.drv = drv
		p.mu.Unlock()
	})

	p.mu.Lock()
	defer p.mu.Unlock()

	if entry.drv == nil {
		return nil, errors.Join(ErrUnknownProvider, fmt.Errorf("provider %q has no driver", name))
	}

	return entry.drv, nil
}
