package sqlspy

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"sync"
	"time"
)

// DefaultLineTimeFormat is the timestamp layout used by LineHandler unless configured otherwise.
const DefaultLineTimeFormat = "2006-01-02 15:04:05.000"

// LineHandlerOptions configures a LineHandler.
type LineHandlerOptions struct {
	// Level is the minimum level that is written, slog.LevelInfo if nil.
	Level slog.Leveler

	// ObjectTagKey names the attribute rendered in the first bracket field. Empty means no field.
	ObjectTagKey string

	// DurationTagKey names the attribute rendered in the second bracket field. Empty means no field.
	DurationTagKey string

	// TimeFormat is the time.Format layout of the timestamp, DefaultLineTimeFormat if empty.
	TimeFormat string
}

// LineHandler writes one line per record in the trace layout
//
//	<timestamp> <level> [<object-tag>] [<duration-tag>] <message> key=value...
//
// The bracket fields are only written when the corresponding tag key is configured. Attributes
// other than the tags follow the message as key=value pairs.
type LineHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	opts   LineHandlerOptions
	attrs  []slog.Attr
	prefix string
}

// NewLineHandler creates a LineHandler writing to w.
func NewLineHandler(w io.Writer, opts *LineHandlerOptions) *LineHandler {
	h := &LineHandler{mu: &sync.Mutex{}, w: w}
	if opts != nil {
		h.opts = *opts
	}

	if h.opts.Level == nil {
		h.opts.Level = slog.LevelInfo
	}

	if h.opts.TimeFormat == "" {
		h.opts.TimeFormat = DefaultLineTimeFormat
	}

	return h
}

// Enabled reports whether level reaches the configured minimum.
func (h *LineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

// Handle renders and writes the record.
func (h *LineHandler) Handle(_ context.Context, r slog.Record) error {
	all := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs())
	all = append(all, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		all = append(all, h.qualify(a))
		return true
	})

	var buf bytes.Buffer

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	buf.WriteString(ts.Format(h.opts.TimeFormat))
	buf.WriteByte(' ')
	buf.WriteString(r.Level.String())

	if h.opts.ObjectTagKey != "" {
		h.writeTag(&buf, all, h.opts.ObjectTagKey)
	}

	if h.opts.DurationTagKey != "" {
		h.writeTag(&buf, all, h.opts.DurationTagKey)
	}

	buf.WriteByte(' ')
	buf.WriteString(r.Message)

	for _, a := range all {
		if a.Key == h.opts.ObjectTagKey || a.Key == h.opts.DurationTagKey || a.Equal(slog.Attr{}) {
			continue
		}
		buf.WriteByte(' ')
		buf.WriteString(a.Key)
		buf.WriteByte('=')
		buf.WriteString(a.Value.Resolve().String())
	}
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())

	return err
}

// WithAttrs returns a handler that writes attrs with every record.
func (h *LineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, a := range attrs {
		clone.attrs = append(clone.attrs, h.qualify(a))
	}

	return &clone
}

// WithGroup returns a handler that prefixes subsequent attribute keys with name.
func (h *LineHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	clone := *h
	clone.prefix = h.prefix + name + "."

	return &clone
}

func (h *LineHandler) qualify(a slog.Attr) slog.Attr {
	if h.prefix == "" {
		return a
	}
	a.Key = h.prefix + a.Key

	return a
}

func (h *LineHandler) writeTag(buf *bytes.Buffer, attrs []slog.Attr, key string) {
	buf.WriteString(" [")
	for i := len(attrs) - 1; i >= 0; i-- {
		if attrs[i].Key == key {
			buf.WriteString(attrs[i].Value.Resolve().String())
			break
		}
	}
	buf.WriteByte(']')
}
