package spydb_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/sqlspy-go/sqlspy"
	"github.com/AntonStoeckl/sqlspy-go/sqlspy/spy"
	"github.com/AntonStoeckl/sqlspy-go/sqlspy/spydb"
	"github.com/AntonStoeckl/sqlspy-go/sqlspy/spydriver"
	"github.com/AntonStoeckl/sqlspy-go/testutil/fakedriver"
	. "github.com/AntonStoeckl/sqlspy-go/testutil/helper" //nolint:revive
)

type gateFunc func(text string) bool

func (f gateFunc) Matches(text string) bool {
	return f(text)
}

var matchNothing = gateFunc(func(string) bool { return false })

func givenRegisteredFake(config fakedriver.Config) (string, fakedriver.ContextDriver) {
	name := "fake-" + uuid.NewString()[:8]
	fake := fakedriver.NewContext(config)
	sql.Register(name, fake)

	return name, fake
}

func Test_Open_ShouldTraceQueries(t *testing.T) {
	name, fake := givenRegisteredFake(fakedriver.Config{Columns: []string{"title"}, Data: [][]driver.Value{{"Learning Domain-Driven Design"}}})
	logSpy := NewLogHandlerSpy(false)

	db, err := spydb.Open("sql:spy:"+name+":mem", spy.WithHandler(logSpy), spy.WithGate(matchNothing))
	require.NoError(t, err)

	var title string
	err = db.QueryRowContext(context.Background(), "SELECT title FROM books").Scan(&title)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	assert.Equal(t, "Learning Domain-Driven Design", title)
	assert.True(t, fake.Called("Conn.QueryContext SELECT title FROM books"))
	assert.True(t, logSpy.HasDebugLogWithMessage(`QueryContext("SELECT title FROM books", [])`+": "+findRowsTag(t, logSpy)).
		WithDurationMS(spy.DefaultDurationTagKey).
		Assert())
}

// findRowsTag returns the object tag of the only Rows decorator that was created.
func findRowsTag(t *testing.T, logSpy *LogHandlerSpy) string {
	t.Helper()

	value, ok := logSpy.HasDebugLogWithMessage("new Rows()").Attr(spy.DefaultObjectTagKey)
	require.True(t, ok, "a Rows decorator should have been created")

	return value.String()
}

func Test_Open_ShouldUseTheRegisteredDriver_WithoutOptions(t *testing.T) {
	name, _ := givenRegisteredFake(fakedriver.Config{})

	db, err := spydb.Open("sql:spy:" + name + ":mem")
	require.NoError(t, err)
	defer db.Close()

	assert.Same(t, spydriver.Default(), db.Driver())
}

func Test_Open_ShouldFail_ForForeignIdentifiers(t *testing.T) {
	_, err := spydb.Open("sql:postgres:host=localhost", spy.WithGate(matchNothing))

	assert.ErrorIs(t, err, spydriver.ErrNotMine)
}

func Test_Open_ShouldFail_ForInvalidOptions(t *testing.T) {
	_, err := spydb.Open("sql:spy:postgres:host=localhost", spy.WithGate(nil))

	assert.ErrorIs(t, err, spy.ErrNilGate)
}

func Test_OpenSQLX_ShouldBindLikeTheUnderlyingDriver(t *testing.T) {
	tests := []struct {
		name       string
		dsn        string
		driverName string
		rebound    string
	}{
		{name: "pgx pass-through", dsn: "sql:spy:pgx:postgres://reader@localhost:5432/books", driverName: "pgx", rebound: "SELECT * FROM books WHERE id = $1"},
		{name: "lib/pq literal", dsn: "sql:spy#postgres:-:host=localhost dbname=books", driverName: "postgres", rebound: "SELECT * FROM books WHERE id = $1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := spydb.OpenSQLX(tt.dsn, spy.WithGate(matchNothing))
			require.NoError(t, err)
			defer db.Close()

			assert.Equal(t, tt.driverName, db.DriverName())
			assert.Equal(t, tt.rebound, db.Rebind("SELECT * FROM books WHERE id = ?"))
		})
	}
}

func Test_OpenSQLX_ShouldFail_ForInvalidIdentifiers(t *testing.T) {
	_, notMineErr := spydb.OpenSQLX("sql:pgx:postgres://localhost")
	_, invalidErr := spydb.OpenSQLX("sql:spy#pgx")

	assert.ErrorIs(t, notMineErr, spydriver.ErrNotMine)
	assert.ErrorIs(t, invalidErr, sqlspy.ErrConnectFailed)
	assert.ErrorIs(t, invalidErr, spydriver.ErrInvalidDSN)
}

func Test_OpenPGXPool_ShouldDecorateThePoolConnector(t *testing.T) {
	pool, err := pgxpool.New(context.Background(), "postgres://reader@localhost:5432/books")
	require.NoError(t, err)
	defer pool.Close()
	logSpy := NewLogHandlerSpy(false)

	db, err := spydb.OpenPGXPool(pool, spy.WithHandler(logSpy), spy.WithGate(matchNothing))
	require.NoError(t, err)
	defer db.Close()

	assert.IsType(t, &spydriver.Driver{}, db.Driver())
	assert.True(t, logSpy.HasDebugLogWithMessage("new Connector()").Assert())
}

func Test_OpenPGXPool_ShouldFail_ForNilPools(t *testing.T) {
	_, err := spydb.OpenPGXPool(nil)

	assert.ErrorIs(t, err, spydb.ErrNilPool)
}

func Test_WrapConnector_ShouldTraceEveryConnection(t *testing.T) {
	fake := fakedriver.NewContext(fakedriver.Config{RowsAffected: 3})
	connector, err := fake.OpenConnector("mem")
	require.NoError(t, err)
	logSpy := NewLogHandlerSpy(false)

	wrapped, err := spydb.WrapConnector(connector, spy.WithHandler(logSpy), spy.WithGate(matchNothing))
	require.NoError(t, err)
	db := sql.OpenDB(wrapped)

	result, err := db.ExecContext(context.Background(), "DELETE FROM books")
	require.NoError(t, err)
	affected, err := result.RowsAffected()
	require.NoError(t, err)
	require.NoError(t, db.Close())

	assert.Equal(t, int64(3), affected)
	assert.Same(t, connector, wrapped.Unwrap())
	assert.True(t, logSpy.HasDebugLogWithMessagePrefix("Connect()").Assert())
	assert.True(t, logSpy.HasDebugLogWithMessagePrefix(`ExecContext("DELETE FROM books", [])`).Assert())
	assert.True(t, logSpy.HasDebugLogWithMessage("RowsAffected(): 3").Assert())
	assert.True(t, fake.Called("Connector.Close"), "closing the DB should close the real connector")
}

func Test_WrapConnector_ShouldBeIdempotent(t *testing.T) {
	fake := fakedriver.NewContext(fakedriver.Config{})
	connector, err := fake.OpenConnector("mem")
	require.NoError(t, err)

	once, err := spydb.WrapConnector(connector, spy.WithGate(matchNothing))
	require.NoError(t, err)
	twice, err := spydb.WrapConnector(once)
	require.NoError(t, err)

	assert.Same(t, once, twice)
}

func Test_WrapConnector_ShouldFail_ForNilConnectors(t *testing.T) {
	_, err := spydb.WrapConnector(nil)

	assert.ErrorIs(t, err, spydb.ErrNilConnector)
}
