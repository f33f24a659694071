// Package fakedriver provides in-memory database/sql drivers for tests.
//
// Driver implements only the mandatory driver interfaces, ContextDriver additionally implements every
// optional interface database/sql looks for. Queries are not parsed: every query returns the configured
// rows and every statement execution the configured result. All calls are recorded.
package fakedriver

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
)

// ErrClosed is returned by calls on closed connections or statements.
var ErrClosed = errors.New("fakedriver: closed")

// Config is the canned data of a fake driver.
type Config struct {
	Columns      []string
	Data         [][]driver.Value
	RowsAffected int64
	LastInsertID int64

	// OpenErr fails Open and Connect, ExecErr fails every exec, QueryErr every query.
	OpenErr  error
	ExecErr  error
	QueryErr error
}

// Driver is a fake driver with the mandatory interfaces only.
type Driver struct {
	mu     sync.Mutex
	config Config
	calls  []string
	dsns   []string
}

// New creates a Driver serving config.
func New(config Config) *Driver {
	return &Driver{config: config}
}

// Open implements driver.Driver.
func (d *Driver) Open(name string) (driver.Conn, error) {
	d.record("Driver.Open")

	d.mu.Lock()
	d.dsns = append(d.dsns, name)
	d.mu.Unlock()

	if d.config.OpenErr != nil {
		return nil, d.config.OpenErr
	}

	return &Conn{driver: d}, nil
}

// Calls returns the recorded calls as "Type.Method" or "Type.Method <query>".
func (d *Driver) Calls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return slices.Clone(d.calls)
}

// DSNs returns the DSNs Open and Connect were called with.
func (d *Driver) DSNs() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return slices.Clone(d.dsns)
}

// Called reports whether a call starting with prefix was recorded.
func (d *Driver) Called(prefix string) bool {
	return slices.ContainsFunc(d.Calls(), func(call string) bool { return strings.HasPrefix(call, prefix) })
}

func (d *Driver) record(call string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.calls = append(d.calls, call)
}

// Conn is the connection of Driver.
type Conn struct {
	driver *Driver
	closed bool
}

// Prepare implements driver.Conn.
func (c *Conn) Prepare(query string) (driver.Stmt, error) {
	c.driver.record("Conn.Prepare " + query)

	if c.closed {
		return nil, ErrClosed
	}

	return &Stmt{conn: c, query: query}, nil
}

// Close implements driver.Conn.
func (c *Conn) Close() error {
	c.driver.record("Conn.Close")
	c.closed = true

	return nil
}

// Begin implements driver.Conn.
func (c *Conn) Begin() (driver.Tx, error) {
	c.driver.record("Conn.Begin")

	if c.closed {
		return nil, ErrClosed
	}

	return &Tx{driver: c.driver}, nil
}

func (c *Conn) exec() (driver.Result, error) {
	if c.driver.config.ExecErr != nil {
		return nil, c.driver.config.ExecErr
	}

	return Result{rowsAffected: c.driver.config.RowsAffected, lastInsertID: c.driver.config.LastInsertID}, nil
}

func (c *Conn) query() (driver.Rows, error) {
	if c.driver.config.QueryErr != nil {
		return nil, c.driver.config.QueryErr
	}

	return &Rows{driver: c.driver, columns: c.driver.config.Columns, data: c.driver.config.Data}, nil
}

// Stmt is the statement of Conn.
type Stmt struct {
	conn   *Conn
	query  string
	closed bool
}

// Close implements driver.Stmt.
func (s *Stmt) Close() error {
	s.conn.driver.record("Stmt.Close")
	s.closed = true

	return nil
}

// NumInput implements driver.Stmt. The number of placeholders is not known.
func (s *Stmt) NumInput() int {
	return -1
}

// Exec implements driver.Stmt.
func (s *Stmt) Exec(args []driver.Value) (driver.Result, error) {
	s.conn.driver.record(fmt.Sprintf("Stmt.Exec %s %v", s.query, args))

	if s.closed {
		return nil, ErrClosed
	}

	return s.conn.exec()
}

// Query implements driver.Stmt.
func (s *Stmt) Query(args []driver.Value) (driver.Rows, error) {
	s.conn.driver.record(fmt.Sprintf("Stmt.Query %s %v", s.query, args))

	if s.closed {
		return nil, ErrClosed
	}

	return s.conn.query()
}

// Tx is the transaction of Conn.
type Tx struct {
	driver *Driver
}

// Commit implements driver.Tx.
func (tx *Tx) Commit() error {
	tx.driver.record("Tx.Commit")
	return nil
}

// Rollback implements driver.Tx.
func (tx *Tx) Rollback() error {
	tx.driver.record("Tx.Rollback")
	return nil
}

// Rows iterates the canned data.
type Rows struct {
	driver  *Driver
	columns []string
	data    [][]driver.Value
	pos     int
}

// Columns implements driver.Rows.
func (r *Rows) Columns() []string {
	return r.columns
}

// Close implements driver.Rows.
func (r *Rows) Close() error {
	r.driver.record("Rows.Close")
	return nil
}

// Next implements driver.Rows.
func (r *Rows) Next(dest []driver.Value) error {
	if r.pos >= len(r.data) {
		return io.EOF
	}

	copy(dest, r.data[r.pos])
	r.pos++

	return nil
}

// Result is the canned exec result.
type Result struct {
	rowsAffected int64
	lastInsertID int64
}

// LastInsertId implements driver.Result.
func (r Result) LastInsertId() (int64, error) {
	return r.lastInsertID, nil
}

// RowsAffected implements driver.Result.
func (r Result) RowsAffected() (int64, error) {
	return r.rowsAffected, nil
}

// ContextDriver is a fake driver that implements the optional interfaces, too.
type ContextDriver struct {
	*Driver
}

// NewContext creates a ContextDriver serving config.
func NewContext(config Config) ContextDriver {
	return ContextDriver{Driver: New(config)}
}

// Open implements driver.Driver.
func (d ContextDriver) Open(name string) (driver.Conn, error) {
	conn, err := d.Driver.Open(name)
	if err != nil {
		return nil, err
	}

	return &ContextConn{Conn: conn.(*Conn)}, nil
}

// OpenConnector implements driver.DriverContext.
func (d ContextDriver) OpenConnector(name string) (driver.Connector, error) {
	d.record("Driver.OpenConnector")

	return &Connector{driver: d, name: name}, nil
}

// Connector is the connector of ContextDriver.
type Connector struct {
	driver ContextDriver
	name   string
	closed bool
}

// Connect implements driver.Connector.
func (c *Connector) Connect(context.Context) (driver.Conn, error) {
	return c.driver.Open(c.name)
}

// Driver implements driver.Connector.
func (c *Connector) Driver() driver.Driver {
	return c.driver
}

// Close is called by database/sql when the DB is closed.
func (c *Connector) Close() error {
	c.driver.record("Connector.Close")
	c.closed = true

	return nil
}

// ContextConn is the connection of ContextDriver.
type ContextConn struct {
	*Conn
}

// PrepareContext implements driver.ConnPrepareContext.
func (c *ContextConn) PrepareContext(_ context.Context, query string) (driver.Stmt, error) {
	c.driver.record("Conn.PrepareContext " + query)

	if c.closed {
		return nil, ErrClosed
	}

	return &ContextStmt{Stmt: &Stmt{conn: c.Conn, query: query}}, nil
}

// BeginTx implements driver.ConnBeginTx.
func (c *ContextConn) BeginTx(_ context.Context, opts driver.TxOptions) (driver.Tx, error) {
	c.driver.record(fmt.Sprintf("Conn.BeginTx %d %t", opts.Isolation, opts.ReadOnly))

	return &Tx{driver: c.driver}, nil
}

// ExecContext implements driver.ExecerContext.
func (c *ContextConn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	c.driver.record(fmt.Sprintf("Conn.ExecContext %s %v", query, values(args)))

	return c.exec()
}

// QueryContext implements driver.QueryerContext.
func (c *ContextConn) QueryContext(_ context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	c.driver.record(fmt.Sprintf("Conn.QueryContext %s %v", query, values(args)))

	return c.query()
}

// Ping implements driver.Pinger.
func (c *ContextConn) Ping(context.Context) error {
	c.driver.record("Conn.Ping")
	return nil
}

// ResetSession implements driver.SessionResetter.
func (c *ContextConn) ResetSession(context.Context) error {
	c.driver.record("Conn.ResetSession")
	return nil
}

// IsValid implements driver.Validator.
func (c *ContextConn) IsValid() bool {
	return !c.closed
}

// ContextStmt is the statement of ContextConn.
type ContextStmt struct {
	*Stmt
}

// ExecContext implements driver.StmtExecContext.
func (s *ContextStmt) ExecContext(_ context.Context, args []driver.NamedValue) (driver.Result, error) {
	s.conn.driver.record(fmt.Sprintf("Stmt.ExecContext %s %v", s.query, values(args)))

	return s.conn.exec()
}

// QueryContext implements driver.StmtQueryContext.
func (s *ContextStmt) QueryContext(_ context.Context, args []driver.NamedValue) (driver.Rows, error) {
	s.conn.driver.record(fmt.Sprintf("Stmt.QueryContext %s %v", s.query, values(args)))

	return s.conn.query()
}

func values(named []driver.NamedValue) []driver.Value {
	out := make([]driver.Value, len(named))
	for i, arg := range named {
		out[i] = arg.Value
	}

	return out
}
