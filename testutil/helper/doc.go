// Package helper provides testing utilities for the sqlspy test suites.
//
// LogHandlerSpy captures slog records, including the logging-context tags lifted into them, and
// MetricsCollectorSpy captures MetricsCollector calls. Both come with small matchers for assertions.
package helper
