package pgconfig

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// PostgresPGXPoolConfig creates a pgxpool.Config for the test database.
func PostgresPGXPoolConfig(t testing.TB) *pgxpool.Config {
	t.Helper()

	const defaultMaxConnections = int32(10)
	const defaultMinConnections = int32(0)
	const defaultMaxConnLifetime = time.Hour
	const defaultMaxConnIdleTime = time.Minute * 5
	const defaultHealthCheckPeriod = time.Minute
	const defaultConnectTimeout = time.Second * 5

	dbConfig, err := pgxpool.ParseConfig(RequirePostgres(t))
	require.NoError(t, err, "failed to create a config")

	dbConfig.MaxConns = defaultMaxConnections
	dbConfig.MinConns = defaultMinConnections
	dbConfig.MaxConnLifetime = defaultMaxConnLifetime
	dbConfig.MaxConnIdleTime = defaultMaxConnIdleTime
	dbConfig.HealthCheckPeriod = defaultHealthCheckPeriod
	dbConfig.ConnConfig.ConnectTimeout = defaultConnectTimeout

	return dbConfig
}

// PostgresPGXPool creates a pool on the test database. The pool is closed when t finishes.
func PostgresPGXPool(t testing.TB) *pgxpool.Pool {
	t.Helper()

	pool, err := pgxpool.NewWithConfig(context.Background(), PostgresPGXPoolConfig(t))
	require.NoError(t, err, "failed to create pool")
	t.Cleanup(pool.Close)

	return pool
}
