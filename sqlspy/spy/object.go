package spy

import (
	"context"
	"encoding/hex"
	"log/slog"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/sqlspy-go/sqlspy"
)

// Decorated is implemented by every generated decorator.
type Decorated interface {
	SpyObject() *Object
}

// Object is the identity a decorator logs under.
type Object struct {
	tracer *Tracer
	parent Decorated
	iface  string
	tag    string
}

// NewObject creates the identity of a new decorator of the interface named iface.
// A nil tracer means Default.
func NewObject(t *Tracer, iface string) *Object {
	if t == nil {
		t = Default()
	}

	id := uuid.New()

	return &Object{
		tracer: t,
		iface:  iface,
		tag:    iface + "@" + hex.EncodeToString(id[:4]),
	}
}

// NewChildObject creates the identity of a decorator handed out by parent, e.g. a Stmt prepared on a Conn.
// The child logs through the tracer of parent.
func NewChildObject(parent Decorated, iface string) *Object {
	o := NewObject(parent.SpyObject().tracer, iface)
	o.parent = parent

	return o
}

// Parent returns the decorator that handed out this one, nil for decorators created directly.
func (o *Object) Parent() Decorated {
	return o.parent
}

// Tracer returns the tracer of the object.
func (o *Object) Tracer() *Tracer {
	return o.tracer
}

// Interface returns the short interface name, e.g. "Conn".
func (o *Object) Interface() string {
	return o.iface
}

// Tag returns the object tag, e.g. "Conn@1a2b3c4d".
func (o *Object) Tag() string {
	return o.tag
}

// String returns the object tag.
func (o *Object) String() string {
	return o.tag
}

// Created logs the creation of the decorator as "new <Interface>()" with a zero duration.
func (o *Object) Created(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}

	t := o.tracer
	if !t.sink.enabled(ctx, t.level) {
		return
	}

	t.sink.log(ctx, t.level, "new "+o.iface+"()", o.tags(0, true))
}

// Start begins a call without a caller context.
func (o *Object) Start(method string, args ...any) *Call {
	return o.StartContext(context.Background(), method, args...)
}

// StartContext begins a call. The description is only built when the record would be logged.
// ctx is the caller's context and becomes the context of the call record.
func (o *Object) StartContext(ctx context.Context, method string, args ...any) *Call {
	if ctx == nil {
		ctx = context.Background()
	}

	t := o.tracer
	c := &Call{
		object: o,
		ctx:    ctx,
		method: method,
		start:  t.now(),
	}

	if t.sink.enabled(ctx, t.level) {
		c.logging = true
		c.description = sqlspy.Describe(t.settings.Format, method, args...)
	}

	return c
}

func (o *Object) tags(elapsed float64, withDuration bool) []slog.Attr {
	settings := o.tracer.settings
	tags := make([]slog.Attr, 0, 2)

	if settings.ObjectTag != "" {
		tags = append(tags, slog.String(settings.ObjectTag, o.tag))
	}

	if withDuration && settings.DurationTag != "" {
		tags = append(tags, slog.Float64(settings.DurationTag, elapsed))
	}

	return tags
}
