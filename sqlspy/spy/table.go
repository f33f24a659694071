package spy

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sync"
)

// Constructor creates a decorator for v, which is known to implement the registered interface.
type Constructor func(t *Tracer, v any) any

type tableEntry struct {
	name      string
	construct Constructor
}

// Table maps interface types to decorator constructors.
// It is safe for concurrent use.
type Table struct {
	mu      sync.RWMutex
	entries map[reflect.Type]tableEntry
}

// NewTable creates an empty Table.
func NewTable() *Table {
	return &Table{entries: make(map[reflect.Type]tableEntry)}
}

// Register maps the interface type iface to construct. It panics if iface is not an interface type,
// like database/sql.Register panics on programming errors.
func (tb *Table) Register(iface reflect.Type, name string, construct Constructor) {
	if iface == nil || iface.Kind() != reflect.Interface {
		panic(fmt.Sprintf("spy: Register of non-interface type %v", iface))
	}

	if construct == nil {
		panic("spy: Register of nil constructor for " + name)
	}

	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.entries[iface] = tableEntry{name: name, construct: construct}
}

// Interfaces returns the names of the registered interfaces, sorted.
func (tb *Table) Interfaces() []string {
	tb.mu.RLock()
	defer tb.mu.RUnlock()

	names := make([]string, 0, len(tb.entries))
	for _, entry := range tb.entries {
		names = append(names, entry.name)
	}
	slices.Sort(names)

	return names
}

// Wrap returns v decorated as iface. nil stays nil, and values that are decorators already
// are returned as they are.
func (tb *Table) Wrap(t *Tracer, iface reflect.Type, v any) (any, error) {
	if v == nil {
		return nil, nil //nolint:nilnil
	}

	tb.mu.RLock()
	entry, ok := tb.entries[iface]
	tb.mu.RUnlock()

	if !ok {
		return nil, errors.Join(ErrNoDecorator, fmt.Errorf("%v", iface))
	}

	if !reflect.TypeOf(v).Implements(iface) {
		return nil, errors.Join(ErrNotImplemented, fmt.Errorf("%T does not implement %v", v, iface))
	}

	if _, decorated := v.(Decorated); decorated {
		return v, nil
	}

	return entry.construct(t, v), nil
}

// Wrap is the typed form of Table.Wrap.
func Wrap[T any](tb *Table, t *Tracer, v T) (T, error) {
	var zero T

	wrapped, err := tb.Wrap(t, reflect.TypeFor[T](), v)
	if err != nil || wrapped == nil {
		return zero, err
	}

	return wrapped.(T), nil
}
