package pgconfig

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/sqlspy-go/sqlspy/spy"
	"github.com/AntonStoeckl/sqlspy-go/sqlspy/spydb"
)

// PostgresSQLX opens a traced *sqlx.DB on the test database through the pgx provider and pings it.
// The DB is closed when t finishes.
func PostgresSQLX(t testing.TB, options ...spy.Option) *sqlx.DB {
	t.Helper()

	const defaultMaxOpenConnections = 10
	const defaultMaxIdleConnections = 2
	const defaultMaxConnLifetime = time.Hour
	const defaultMaxConnIdleTime = time.Minute * 5

	db, err := spydb.OpenSQLX("sql:spy#pgx:pgx:"+RequirePostgres(t), options...)
	require.NoError(t, err, "failed to open database connection")
	t.Cleanup(func() { _ = db.Close() })

	db.SetMaxOpenConns(defaultMaxOpenConnections)
	db.SetMaxIdleConns(defaultMaxIdleConnections)
	db.SetConnMaxLifetime(defaultMaxConnLifetime)
	db.SetConnMaxIdleTime(defaultMaxConnIdleTime)

	require.NoError(t, db.PingContext(context.Background()), "failed to ping database")

	return db
}
