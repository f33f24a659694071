// Package sqlspy provides the shared building blocks for transparent call tracing of
// database/sql drivers.
//
// The decorators generated into package spydriver forward every driver call unchanged and emit
// one log record per call, containing the method name, the formatted arguments and the result
// or error. This package defines what those records look like and how they reach a log sink:
//   - FormatArg: the canonical text form of call arguments and results
//   - WithLogAttrs / ContextHandler: the logging-context channel carrying object and duration tags
//   - LineHandler: a slog.Handler rendering the classic one-line trace layout
//   - Logger, ContextualLogger, MetricsCollector: dependency-free observability interfaces
//
// Common usage pattern:
//
//	handler, _ := sqlspy.NewContextHandler(sqlspy.NewLineHandler(os.Stderr, &sqlspy.LineHandlerOptions{
//		Level:          slog.LevelDebug,
//		ObjectTagKey:   "spy_id",
//		DurationTagKey: "spy_duration_ms",
//	}))
//
//	db, err := spydb.Open("sql:spy:postgres:host=localhost dbname=app", spy.WithHandler(handler))
package sqlspy
