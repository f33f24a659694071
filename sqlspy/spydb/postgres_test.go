package spydb_test

import (
	"context"
	"testing"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/sqlspy-go/sqlspy/spy"
	"github.com/AntonStoeckl/sqlspy-go/sqlspy/spydb"
	. "github.com/AntonStoeckl/sqlspy-go/testutil/helper" //nolint:revive
	"github.com/AntonStoeckl/sqlspy-go/testutil/pgconfig"
)

func givenSelectQuery(t *testing.T) string {
	t.Helper()

	query, _, err := goqu.Dialect("postgres").
		From(goqu.L("generate_series(1, 3)").As("n")).
		Select(goqu.C("n")).
		Order(goqu.C("n").Asc()).
		ToSQL()
	require.NoError(t, err)

	return query
}

func Test_Postgres_SQLDB_ShouldTraceAndTrap(t *testing.T) {
	query := givenSelectQuery(t)
	logSpy := NewLogHandlerSpy(false)
	db := pgconfig.PostgresSQLDB(t, spy.WithHandler(logSpy), spy.WithGate(gateFunc(func(text string) bool { return text == query })))

	rows, err := db.QueryContext(context.Background(), query)
	require.NoError(t, err)

	var got []int64
	for rows.Next() {
		var n int64
		require.NoError(t, rows.Scan(&n))
		got = append(got, n)
	}
	require.NoError(t, rows.Err())
	require.NoError(t, rows.Close())

	assert.Equal(t, []int64{1, 2, 3}, got)
	assert.True(t, logSpy.HasDebugLogWithMessage("SQL trap triggered").WithAttrKey("stack").Assert())
	assert.True(t, logSpy.HasDebugLogWithMessagePrefix("Next(").Assert())
}

func Test_Postgres_SQLX_ShouldTraceNamedQueries(t *testing.T) {
	logSpy := NewLogHandlerSpy(false)
	db := pgconfig.PostgresSQLX(t, spy.WithHandler(logSpy), spy.WithGate(matchNothing))

	var sum int64
	err := db.GetContext(context.Background(), &sum, db.Rebind("SELECT ?::bigint + ?::bigint"), 40, 2)

	require.NoError(t, err)
	assert.Equal(t, int64(42), sum)
	assert.True(t, logSpy.HasDebugLogWithMessagePrefix(`QueryContext("SELECT $1::bigint + $2::bigint", `).Assert())
}

func Test_Postgres_PGXPool_ShouldTraceTransactions(t *testing.T) {
	ctx := context.Background()
	logSpy := NewLogHandlerSpy(false)
	db, err := spydb.OpenPGXPool(pgconfig.PostgresPGXPool(t), spy.WithHandler(logSpy), spy.WithGate(matchNothing))
	require.NoError(t, err)
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	_, err = tx.ExecContext(ctx, "CREATE TEMPORARY TABLE books (id bigint) ON COMMIT DROP")
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.True(t, logSpy.HasDebugLogWithMessagePrefix("BeginTx(").Assert())
	assert.True(t, logSpy.HasDebugLogWithMessage("Commit()").Assert())
}
