package spydriver

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"reflect"
)

// The fallbacks below are used when the wrapped value lacks an optional interface.
// They mirror what database/sql does in that case, so wrapping never changes behavior.
// Calls they make into the wrapped value are logged, the missing call itself is not.

func driverOpenConnectorFallback(d *Driver, name string) (driver.Connector, error) {
	return dsnConnector{name: name, driver: d}, nil
}

type dsnConnector struct {
	name   string
	driver *Driver
}

func (c dsnConnector) Connect(context.Context) (driver.Conn, error) {
	return c.driver.Open(c.name)
}

func (c dsnConnector) Driver() driver.Driver {
	return c.driver
}

func connectorCloseFallback(*Connector) error {
	return nil
}

func connPrepareContextFallback(d *Conn, ctx context.Context, query string) (driver.Stmt, error) {
	stmt, err := d.Prepare(query)
	if err != nil {
		return nil, err
	}

	select {
	case <-ctx.Done():
		_ = stmt.Close()
		return nil, ctx.Err()
	default:
	}

	return stmt, nil
}

func connBeginTxFallback(d *Conn, ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
	if opts.Isolation != driver.IsolationLevel(0) {
		return nil, ErrNonDefaultIsolation
	}

	if opts.ReadOnly {
		return nil, ErrReadOnlyTx
	}

	tx, err := d.Begin() //nolint:staticcheck // the only way into drivers without ConnBeginTx
	if err != nil {
		return nil, err
	}

	select {
	case <-ctx.Done():
		_ = tx.Rollback()
		return nil, ctx.Err()
	default:
	}

	return tx, nil
}

func connExecContextFallback(d *Conn, ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	execer, ok := d.wrapped.(driver.Execer) //nolint:staticcheck // older drivers only implement Execer
	if !ok {
		return nil, driver.ErrSkip
	}

	values, err := namedValuesToValues(args)
	if err != nil {
		return nil, err
	}

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	call := d.obj.StartContext(ctx, "Exec", query, values)
	defer call.Recover()
	call.Trap(query)

	result, err := execer.Exec(query, values)
	if err != nil {
		call.Fail(err)
		return result, err
	}

	result = wrapResult(d, result)
	call.Return(result)

	return result, nil
}

func connQueryContextFallback(d *Conn, ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	queryer, ok := d.wrapped.(driver.Queryer) //nolint:staticcheck // older drivers only implement Queryer
	if !ok {
		return nil, driver.ErrSkip
	}

	values, err := namedValuesToValues(args)
	if err != nil {
		return nil, err
	}

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	call := d.obj.StartContext(ctx, "Query", query, values)
	defer call.Recover()
	call.Trap(query)

	rows, err := queryer.Query(query, values)
	if err != nil {
		call.Fail(err)
		return rows, err
	}

	rows = wrapRows(d, rows)
	call.Return(rows)

	return rows, nil
}

func connPingFallback(*Conn, context.Context) error {
	return nil
}

func connResetSessionFallback(*Conn, context.Context) error {
	return nil
}

func connIsValidFallback(*Conn) bool {
	return true
}

func connCheckNamedValueFallback(*Conn, *driver.NamedValue) error {
	return driver.ErrSkip
}

func stmtExecContextFallback(d *Stmt, ctx context.Context, args []driver.NamedValue) (driver.Result, error) {
	values, err := namedValuesToValues(args)
	if err != nil {
		return nil, err
	}

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	return d.Exec(values) //nolint:staticcheck // the only way into drivers without StmtExecContext
}

func stmtQueryContextFallback(d *Stmt, ctx context.Context, args []driver.NamedValue) (driver.Rows, error) {
	values, err := namedValuesToValues(args)
	if err != nil {
		return nil, err
	}

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	return d.Query(values) //nolint:staticcheck // the only way into drivers without StmtQueryContext
}

// stmtCheckNamedValueFallback runs the checks database/sql runs for a statement without a checker of its own:
// the checker of the connection the statement was prepared on, then the statement's ColumnConverter.
// driver.ErrSkip hands the value on to database/sql's default conversion.
func stmtCheckNamedValueFallback(d *Stmt, nv *driver.NamedValue) error {
	if conn, ok := d.obj.Parent().(*Conn); ok {
		if err := conn.CheckNamedValue(nv); !errors.Is(err, driver.ErrSkip) {
			return err
		}
	}

	converter, ok := d.wrapped.(driver.ColumnConverter) //nolint:staticcheck // still consulted by database/sql
	if !ok {
		return driver.ErrSkip
	}

	return convertColumn(d, converter, nv)
}

// convertColumn mirrors database/sql's conversion through a statement's ColumnConverter.
func convertColumn(d *Stmt, converter driver.ColumnConverter, nv *driver.NamedValue) error { //nolint:staticcheck
	index := nv.Ordinal - 1
	if want := d.NumInput(); want <= index {
		return nil
	}

	if valuer, ok := nv.Value.(driver.Valuer); ok {
		value, err := callValuer(valuer)
		if err != nil {
			return err
		}

		if !driver.IsValue(value) {
			return fmt.Errorf("non-subset type %T returned from Value", value)
		}

		nv.Value = value
	}

	call := d.obj.Start("ColumnConverter", index)
	defer call.Recover()

	columnConverter := converter.ColumnConverter(index)
	call.Return(columnConverter)

	value, err := columnConverter.ConvertValue(nv.Value)
	if err != nil {
		return err
	}

	if !driver.IsValue(value) {
		return fmt.Errorf("driver ColumnConverter error converted %T to unsupported type %T", nv.Value, value)
	}

	nv.Value = value

	return nil
}

// callValuer returns nil for nil pointers whose Value method has a value receiver, like database/sql.
func callValuer(valuer driver.Valuer) (driver.Value, error) {
	if rv := reflect.ValueOf(valuer); rv.Kind() == reflect.Pointer && rv.IsNil() &&
		rv.Type().Elem().Implements(reflect.TypeFor[driver.Valuer]()) {
		return nil, nil
	}

	return valuer.Value()
}

func rowsHasNextResultSetFallback(*Rows) bool {
	return false
}

func rowsNextResultSetFallback(*Rows) error {
	return io.EOF
}

func rowsColumnTypeScanTypeFallback(*Rows, int) reflect.Type {
	return reflect.TypeFor[any]()
}

func rowsColumnTypeDatabaseTypeNameFallback(*Rows, int) string {
	return ""
}

func rowsColumnTypeLengthFallback(*Rows, int) (int64, bool) {
	return 0, false
}

func rowsColumnTypeNullableFallback(*Rows, int) (bool, bool) {
	return false, false
}

func rowsColumnTypePrecisionScaleFallback(*Rows, int) (int64, int64, bool) {
	return 0, 0, false
}

func namedValuesToValues(named []driver.NamedValue) ([]driver.Value, error) {
	values := make([]driver.Value, len(named))

	for i, arg := range named {
		if arg.Name != "" {
			return nil, ErrNamedParameters
		}

		values[i] = arg.Value
	}

	return values, nil
}
