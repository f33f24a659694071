// Package spydb opens traced database handles.
//
// Open and OpenSQLX take a sqlspy identifier such as "sql:spy:pgx:postgres://localhost/books" and
// return handles whose connections are decorated by spydriver. OpenPGXPool and WrapConnector trace
// connections that come from an existing pgx pool or database/sql connector.
//
// Without options the process-wide tracer is used: debug records through slog.Default and the
// trace gate reading sqlspy-config.properties.
package spydb
