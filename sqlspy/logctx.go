package sqlspy

import (
	"context"
	"log/slog"
)

type logAttrsKey struct{}

// WithLogAttrs returns a copy of ctx whose logging-context channel holds attrs.
// Attributes already in the channel are kept unless attrs replaces them by key.
func WithLogAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	existing := LogAttrs(ctx)
	merged := make([]slog.Attr, 0, len(existing)+len(attrs))

	for _, old := range existing {
		if !containsKey(attrs, old.Key) {
			merged = append(merged, old)
		}
	}
	merged = append(merged, attrs...)

	return context.WithValue(ctx, logAttrsKey{}, merged)
}

// LogAttrs returns the attributes in the logging-context channel of ctx.
func LogAttrs(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}

	attrs, _ := ctx.Value(logAttrsKey{}).([]slog.Attr)

	return attrs
}

func containsKey(attrs []slog.Attr, key string) bool {
	for _, a := range attrs {
		if a.Key == key {
			return true
		}
	}

	return false
}

// ContextHandler decorates a slog.Handler and adds the logging-context channel of the
// record's context to every record it handles.
type ContextHandler struct {
	base slog.Handler
}

// NewContextHandler creates a ContextHandler around base.
func NewContextHandler(base slog.Handler) (*ContextHandler, error) {
	if base == nil {
		return nil, ErrNilHandler
	}

	return &ContextHandler{base: base}, nil
}

// Enabled delegates to the base handler.
func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

// Handle adds the channel attributes and passes the record on.
// The record is cloned before modification, as the slog contract requires.
func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs := LogAttrs(ctx); len(attrs) > 0 {
		r = r.Clone()
		r.AddAttrs(attrs...)
	}

	return h.base.Handle(ctx, r)
}

// WithAttrs returns a new ContextHandler whose base has the additional attributes.
func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{base: h.base.WithAttrs(attrs)}
}

// WithGroup returns a new ContextHandler whose base uses the group.
func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{base: h.base.WithGroup(name)}
}
