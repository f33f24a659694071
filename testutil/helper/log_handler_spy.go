package helper

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// LogHandlerSpy is a slog.Handler implementation that captures log records for testing.
// Attributes added through WithAttrs are folded into every captured record.
type LogHandlerSpy struct {
	state       *logSpyState
	attrs       []slog.Attr
	logToStdout bool
	level       slog.Level
}

type logSpyState struct {
	mu      sync.Mutex
	records []slog.Record
}

// NewLogHandlerSpy creates a new LogHandlerSpy enabled for all levels.
// Switchable to log to stdout, which can be useful for debugging tests by seeing the actual log output.
func NewLogHandlerSpy(logToStdOut bool) *LogHandlerSpy {
	return NewLevelLogHandlerSpy(logToStdOut, slog.LevelDebug)
}

// NewLevelLogHandlerSpy creates a new LogHandlerSpy that reports itself disabled below level.
func NewLevelLogHandlerSpy(logToStdOut bool, level slog.Level) *LogHandlerSpy {
	return &LogHandlerSpy{
		state:       &logSpyState{records: make([]slog.Record, 0)},
		logToStdout: logToStdOut,
		level:       level,
	}
}

// Handle implements slog.Handler interface.
func (s *LogHandlerSpy) Handle(ctx context.Context, record slog.Record) error {
	if len(s.attrs) > 0 {
		record = record.Clone()
		record.AddAttrs(s.attrs...)
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	s.state.records = append(s.state.records, record)

	// Optionally also log to stdout for debugging
	if s.logToStdout {
		jsonHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
		_ = jsonHandler.Handle(ctx, record)
	}

	return nil
}

// Enabled implements slog.Handler interface.
func (s *LogHandlerSpy) Enabled(_ context.Context, level slog.Level) bool {
	return level >= s.level
}

// WithAttrs implements slog.Handler interface.
func (s *LogHandlerSpy) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *s
	clone.attrs = append(append([]slog.Attr(nil), s.attrs...), attrs...)

	return &clone
}

// WithGroup implements slog.Handler interface.
func (s *LogHandlerSpy) WithGroup(_ string) slog.Handler {
	// For testing, we don't need to implement this
	return s
}

// GetRecordCount returns the number of captured log records.
func (s *LogHandlerSpy) GetRecordCount() int {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	return len(s.state.records)
}

// GetRecords returns a copy of all captured log records.
func (s *LogHandlerSpy) GetRecords() []slog.Record {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	records := make([]slog.Record, len(s.state.records))
	copy(records, s.state.records)

	return records
}

// Messages returns the messages of all captured records in the order they were logged.
func (s *LogHandlerSpy) Messages() []string {
	records := s.GetRecords()
	messages := make([]string, len(records))
	for i, record := range records {
		messages[i] = record.Message
	}

	return messages
}

// Reset clears all captured log records.
func (s *LogHandlerSpy) Reset() {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	s.state.records = s.state.records[:0]
}

// HasDebugLog checks if there's a debug-level log record containing the specified message.
func (s *LogHandlerSpy) HasDebugLog(message string) bool {
	return s.HasDebugLogWithMessage(message).Assert()
}

// SpyLogRecordMatcher provides a fluent interface for checking log record attributes.
type SpyLogRecordMatcher struct {
	record *slog.Record
	found  bool
}

// HasDebugLogWithMessage starts a fluent chain to check a debug-level log record.
func (s *LogHandlerSpy) HasDebugLogWithMessage(message string) *SpyLogRecordMatcher {
	return s.find(slog.LevelDebug, func(msg string) bool { return msg == message })
}

// HasDebugLogWithMessagePrefix starts a fluent chain to check a debug-level log record whose message
// starts with prefix.
func (s *LogHandlerSpy) HasDebugLogWithMessagePrefix(prefix string) *SpyLogRecordMatcher {
	return s.find(slog.LevelDebug, func(msg string) bool { return strings.HasPrefix(msg, prefix) })
}

// HasInfoLogWithMessage starts a fluent chain to check an info-level log record.
func (s *LogHandlerSpy) HasInfoLogWithMessage(message string) *SpyLogRecordMatcher {
	return s.find(slog.LevelInfo, func(msg string) bool { return msg == message })
}

// HasWarnLogWithMessage starts a fluent chain to check a warn-level log record.
func (s *LogHandlerSpy) HasWarnLogWithMessage(message string) *SpyLogRecordMatcher {
	return s.find(slog.LevelWarn, func(msg string) bool { return msg == message })
}

func (s *LogHandlerSpy) find(level slog.Level, match func(string) bool) *SpyLogRecordMatcher {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	for _, record := range s.state.records {
		if record.Level == level && match(record.Message) {
			return &SpyLogRecordMatcher{
				record: &record,
				found:  true,
			}
		}
	}

	return &SpyLogRecordMatcher{found: false}
}

// WithAttr checks if the log record has an attribute with the given key whose value renders as value.
func (m *SpyLogRecordMatcher) WithAttr(key, value string) *SpyLogRecordMatcher {
	if !m.found {
		return m
	}

	attr, ok := m.lastAttr(key)
	if !ok || attr.Value.String() != value {
		m.found = false
	}

	return m
}

// WithAttrKey checks if the log record has an attribute with the given key.
func (m *SpyLogRecordMatcher) WithAttrKey(key string) *SpyLogRecordMatcher {
	if !m.found {
		return m
	}

	if _, ok := m.lastAttr(key); !ok {
		m.found = false
	}

	return m
}

// WithDurationMS checks if the log record has a duration attribute under key with a non-negative value.
func (m *SpyLogRecordMatcher) WithDurationMS(key string) *SpyLogRecordMatcher {
	if !m.found {
		return m
	}

	attr, ok := m.lastAttr(key)
	if !ok {
		m.found = false

		return m
	}

	// Handle both Int64 and Float64 values for duration
	switch attr.Value.Kind() {
	case slog.KindInt64:
		m.found = attr.Value.Int64() >= 0
	case slog.KindFloat64:
		m.found = attr.Value.Float64() >= 0
	default:
		m.found = false
	}

	return m
}

// Attr returns the value of the last attribute with the given key on the matched record.
func (m *SpyLogRecordMatcher) Attr(key string) (slog.Value, bool) {
	if !m.found {
		return slog.Value{}, false
	}

	attr, ok := m.lastAttr(key)

	return attr.Value, ok
}

// Assert returns true if all conditions in the fluent chain were met.
func (m *SpyLogRecordMatcher) Assert() bool {
	return m.found
}

func (m *SpyLogRecordMatcher) lastAttr(key string) (slog.Attr, bool) {
	var found slog.Attr
	ok := false

	m.record.Attrs(func(attr slog.Attr) bool {
		if attr.Key == key {
			found = attr
			ok = true
		}

		return true // Continue iteration
	})

	return found, ok
}
