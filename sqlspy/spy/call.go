package spy

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/AntonStoeckl/sqlspy-go/sqlspy"
)

const (
	logMsgTrapTriggered = "SQL trap triggered"
	logAttrError        = "error"
	logAttrPanic        = "panic"
	logAttrStack        = "stack"
	logAttrMethod       = "method"
)

// Call is one traced invocation. It logs exactly one record, through Return, Done, Fail or Recover.
type Call struct {
	object      *Object
	ctx         context.Context
	method      string
	description string
	logging     bool
	finished    bool
	start       time.Time
}

// Description returns the call description, empty when the record would not be logged.
func (c *Call) Description() string {
	return c.description
}

// Trap asks the gate about text and, on a match, logs a record carrying the current stack.
// The trap record comes in addition to the call record.
func (c *Call) Trap(text string) {
	t := c.object.tracer
	if !t.settings.Trap || !t.gate.Matches(text) {
		return
	}

	t.recordTrapHit(c.ctx, c.object.iface, c.method)

	if !t.sink.enabled(c.ctx, t.level) {
		return
	}

	t.sink.log(c.ctx, t.level, logMsgTrapTriggered, c.object.tags(0, false),
		slog.String(logAttrMethod, c.method),
		slog.String(logAttrStack, string(debug.Stack())))
}

// Return logs the successful call. results are the non-error results; none means the call has no value.
func (c *Call) Return(results ...any) {
	c.finish(statusSuccess, func() string {
		if len(results) == 0 {
			return c.description
		}

		return c.description + ": " + sqlspy.FormatArgs(c.object.tracer.settings.Format, results...)
	})
}

// Done logs a successful call without a value.
func (c *Call) Done() {
	c.Return()
}

// Fail logs the call with err attached. The caller returns err unchanged.
func (c *Call) Fail(err error) {
	c.finish(statusError, func() string { return c.description }, slog.Any(logAttrError, err))
}

// Recover must be deferred directly. On a panic it logs the call with the panic value and panics again
// with the identical value.
func (c *Call) Recover() {
	r := recover()
	if r == nil {
		return
	}

	c.finish(statusPanic, func() string { return c.description }, slog.Any(logAttrPanic, r))

	panic(r)
}

func (c *Call) finish(status string, message func() string, attrs ...slog.Attr) {
	if c.finished {
		return
	}
	c.finished = true

	t := c.object.tracer
	elapsed := t.now().Sub(c.start)

	t.recordDuration(c.ctx, c.object.iface, c.method, status, elapsed)

	if !c.logging {
		return
	}

	t.sink.log(c.ctx, t.level, message(), c.object.tags(toMilliseconds(elapsed), true), attrs...)
}
