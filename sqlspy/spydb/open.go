package spydb

import (
	"database/sql"
	"database/sql/driver"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/sqlspy-go/sqlspy"
	"github.com/AntonStoeckl/sqlspy-go/sqlspy/spy"
	"github.com/AntonStoeckl/sqlspy-go/sqlspy/spydriver"
)

// Open opens a *sql.DB for the sqlspy identifier dsn.
// Without options the "sqlspy" driver is used, otherwise the decorators trace through a Tracer built
// from options. Like sql.Open, Open does not connect.
func Open(dsn string, options ...spy.Option) (*sql.DB, error) {
	if len(options) == 0 {
		return sql.Open(spydriver.DriverName, dsn)
	}

	tracer, err := spy.NewTracer(options...)
	if err != nil {
		return nil, err
	}

	router, err := spydriver.NewRouter(spydriver.WithTracer(tracer))
	if err != nil {
		return nil, err
	}

	connector, err := router.OpenConnector(dsn)
	if err != nil {
		return nil, err
	}

	return sql.OpenDB(connector), nil
}

// OpenSQLX opens a *sqlx.DB for the sqlspy identifier dsn. The bind type follows the driver the
// identifier routes to, so "sql:spy:pgx:..." rebinds to $1 placeholders.
func OpenSQLX(dsn string, options ...spy.Option) (*sqlx.DB, error) {
	route, err := spydriver.ParseRoute(dsn)
	if errors.Is(err, spydriver.ErrNotMine) {
		return nil, err
	}

	if err != nil {
		return nil, errors.Join(sqlspy.ErrConnectFailed, err)
	}

	db, err := Open(dsn, options...)
	if err != nil {
		return nil, err
	}

	return sqlx.NewDb(db, route.DriverName()), nil
}

// OpenPGXPool opens a *sql.DB whose connections are acquired from pool and traced.
// Closing the returned DB does not close the pool.
func OpenPGXPool(pool *pgxpool.Pool, options ...spy.Option) (*sql.DB, error) {
	if pool == nil {
		return nil, ErrNilPool
	}

	connector, err := WrapConnector(stdlib.GetPoolConnector(pool), options...)
	if err != nil {
		return nil, err
	}

	return sql.OpenDB(connector), nil
}

// WrapConnector decorates connector. Every connection it creates is traced.
func WrapConnector(connector driver.Connector, options ...spy.Option) (*spydriver.Connector, error) {
	if connector == nil {
		return nil, ErrNilConnector
	}

	var tracer *spy.Tracer
	if len(options) > 0 {
		var err error
		if tracer, err = spy.NewTracer(options...); err != nil {
			return nil, err
		}
	}

	if decorated, ok := connector.(*spydriver.Connector); ok {
		return decorated, nil
	}

	return spydriver.NewConnector(tracer, connector), nil
}
