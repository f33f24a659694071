// Package spy is the runtime behind generated decorators.
//
// A generated method follows one protocol:
//
//	call := d.obj.StartContext(ctx, "QueryContext", query, args)
//	defer call.Recover()
//	call.Trap(query)
//	rows, err := d.wrapped.QueryContext(ctx, query, args)
//	if err != nil {
//		call.Fail(err)
//		return rows, err
//	}
//	rows = wrapRows(d, rows)
//	call.Return(rows)
//	return rows, nil
//
// The Tracer owns everything that is shared between decorators: the logger, the trap gate, the
// metrics collector and the Settings that decide which logging-context tags are written.
// Exactly one record is logged per call. Errors and panics of the wrapped value reach the caller unchanged.
package spy
