package pgconfig

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/sqlspy-go/sqlspy/spy"
	"github.com/AntonStoeckl/sqlspy-go/sqlspy/spydb"
)

// PostgresSQLDB opens a traced *sql.DB on the test database through lib/pq and pings it.
// The DB is closed when t finishes.
func PostgresSQLDB(t testing.TB, options ...spy.Option) *sql.DB {
	t.Helper()

	const defaultMaxOpenConnections = 10
	const defaultMaxIdleConnections = 2
	const defaultMaxConnLifetime = time.Hour
	const defaultMaxConnIdleTime = time.Minute * 5

	db, err := spydb.Open("sql:spy:postgres:"+RequirePostgres(t), options...)
	require.NoError(t, err, "failed to open database connection")
	t.Cleanup(func() { _ = db.Close() })

	db.SetMaxOpenConns(defaultMaxOpenConnections)
	db.SetMaxIdleConns(defaultMaxIdleConnections)
	db.SetConnMaxLifetime(defaultMaxConnLifetime)
	db.SetConnMaxIdleTime(defaultMaxConnIdleTime)

	require.NoError(t, db.PingContext(context.Background()), "failed to ping database")

	return db
}
