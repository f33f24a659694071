package spy

import (
	"context"
	"log/slog"

	"github.com/AntonStoeckl/sqlspy-go/sqlspy"
)

// sink is where call records go.
// tags are the logging-context tags of the record, attrs are record attributes.
type sink interface {
	enabled(ctx context.Context, level slog.Level) bool
	log(ctx context.Context, level slog.Level, msg string, tags []slog.Attr, attrs ...slog.Attr)
}

type slogSink struct {
	logger *slog.Logger
}

func newSlogSink(handler slog.Handler) (slogSink, error) {
	if _, lifted := handler.(*sqlspy.ContextHandler); lifted {
		return slogSink{logger: slog.New(handler)}, nil
	}

	contextHandler, err := sqlspy.NewContextHandler(handler)
	if err != nil {
		return slogSink{}, err
	}

	return slogSink{logger: slog.New(contextHandler)}, nil
}

func (s slogSink) enabled(ctx context.Context, level slog.Level) bool {
	return s.logger.Enabled(ctx, level)
}

func (s slogSink) log(ctx context.Context, level slog.Level, msg string, tags []slog.Attr, attrs ...slog.Attr) {
	if len(tags) > 0 {
		ctx = sqlspy.WithLogAttrs(ctx, tags...)
	}

	s.logger.LogAttrs(ctx, level, msg, attrs...)
}

type contextualSink struct {
	logger sqlspy.ContextualLogger
}

func (contextualSink) enabled(context.Context, slog.Level) bool {
	return true
}

func (s contextualSink) log(ctx context.Context, level slog.Level, msg string, tags []slog.Attr, attrs ...slog.Attr) {
	if len(tags) > 0 {
		ctx = sqlspy.WithLogAttrs(ctx, tags...)
	}

	args := make([]any, 0, len(tags)+len(attrs))
	for _, tag := range tags {
		args = append(args, tag)
	}
	for _, attr := range attrs {
		args = append(args, attr)
	}

	switch {
	case level >= slog.LevelError:
		s.logger.ErrorContext(ctx, msg, args...)
	case level >= slog.LevelWarn:
		s.logger.WarnContext(ctx, msg, args...)
	case level >= slog.LevelInfo:
		s.logger.InfoContext(ctx, msg, args...)
	default:
		s.logger.DebugContext(ctx, msg, args...)
	}
}
