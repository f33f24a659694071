// Package oteladapters provides OpenTelemetry adapters for the sqlspy observability interfaces.
// Trace records written through these adapters carry the logging-context tags as OpenTelemetry
// attributes and are correlated with the span in the caller's context.
package oteladapters

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/log"

	"github.com/AntonStoeckl/sqlspy-go/sqlspy"
)

// NewSlogBridgeHandler creates a slog.Handler that hands records to the global OpenTelemetry
// LoggerProvider. Logging-context tags are lifted into record attributes.
// Use it with spy.WithHandler.
func NewSlogBridgeHandler(name string, options ...otelslog.Option) (*sqlspy.ContextHandler, error) {
	return sqlspy.NewContextHandler(otelslog.NewHandler(name, options...))
}

// SlogBridgeLogger implements sqlspy.ContextualLogger using the OpenTelemetry slog bridge.
type SlogBridgeLogger struct {
	logger *slog.Logger
}

// NewSlogBridgeLogger creates a contextual logger on the global OpenTelemetry LoggerProvider
// with automatic trace correlation.
func NewSlogBridgeLogger(name string) *SlogBridgeLogger {
	return &SlogBridgeLogger{logger: otelslog.NewLogger(name)}
}

// NewSlogBridgeLoggerWithHandler creates a contextual logger on handler.
// It does not add OpenTelemetry trace correlation.
func NewSlogBridgeLoggerWithHandler(handler slog.Handler) *SlogBridgeLogger {
	return &SlogBridgeLogger{logger: slog.New(handler)}
}

// DebugContext logs a debug message with context.
func (l *SlogBridgeLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.logger.DebugContext(ctx, msg, args...)
}

// InfoContext logs an info message with context.
func (l *SlogBridgeLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.logger.InfoContext(ctx, msg, args...)
}

// WarnContext logs a warning message with context.
func (l *SlogBridgeLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.logger.WarnContext(ctx, msg, args...)
}

// ErrorContext logs an error message with context.
func (l *SlogBridgeLogger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.logger.ErrorContext(ctx, msg, args...)
}

// Ensure SlogBridgeLogger implements sqlspy.ContextualLogger.
var _ sqlspy.ContextualLogger = (*SlogBridgeLogger)(nil)

// OTelLogger implements sqlspy.ContextualLogger using the OpenTelemetry logging API directly.
type OTelLogger struct {
	logger log.Logger
}

// NewOTelLogger creates a contextual logger that emits records to logger.
func NewOTelLogger(logger log.Logger) *OTelLogger {
	return &OTelLogger{logger: logger}
}

// DebugContext logs a debug message with context using OpenTelemetry log API.
func (l *OTelLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityDebug, msg, args...)
}

// InfoContext logs an info message with context using OpenTelemetry log API.
func (l *OTelLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityInfo, msg, args...)
}

// WarnContext logs a warning message with context using OpenTelemetry log API.
func (l *OTelLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityWarn, msg, args...)
}

// ErrorContext logs an error message with context using OpenTelemetry log API.
func (l *OTelLogger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityError, msg, args...)
}

// emit creates and emits an OpenTelemetry log record with the specified severity.
// args are slog.Attr values or key-value pairs, like slog takes them.
func (l *OTelLogger) emit(ctx context.Context, severity log.Severity, msg string, args ...any) {
	record := log.Record{}
	record.SetSeverity(severity)
	record.SetBody(log.StringValue(msg))

	for i := 0; i < len(args); i++ {
		switch arg := args[i].(type) {
		case slog.Attr:
			record.AddAttributes(keyValue(arg))
		case string:
			if i+1 < len(args) {
				record.AddAttributes(keyValue(slog.Any(arg, args[i+1])))
				i++
			}
		}
	}

	l.logger.Emit(ctx, record)
}

// keyValue converts a slog attribute, keeping numbers and booleans typed.
func keyValue(attr slog.Attr) log.KeyValue {
	value := attr.Value.Resolve()

	switch value.Kind() {
	case slog.KindInt64:
		return log.Int64(attr.Key, value.Int64())
	case slog.KindFloat64:
		return log.Float64(attr.Key, value.Float64())
	case slog.KindBool:
		return log.Bool(attr.Key, value.Bool())
	default:
		return log.String(attr.Key, value.String())
	}
}

// Ensure OTelLogger implements sqlspy.ContextualLogger.
var _ sqlspy.ContextualLogger = (*OTelLogger)(nil)
