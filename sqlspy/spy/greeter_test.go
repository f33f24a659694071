package spy_test

import (
	"context"
	"errors"
	"reflect"

	"github.com/AntonStoeckl/sqlspy-go/sqlspy/spy"
)

// greeter stands in for a driver interface. spyGreeter is written the way the generator writes decorators.
type greeter interface {
	Greet(ctx context.Context, name string) (string, error)
	Reply(name string) greeter
	Close() error
}

type realGreeter struct {
	err       error
	panicWith any
	closed    bool
}

func (g *realGreeter) Greet(_ context.Context, name string) (string, error) {
	if g.panicWith != nil {
		panic(g.panicWith)
	}

	if g.err != nil {
		return "", g.err
	}

	return "hello " + name, nil
}

func (g *realGreeter) Reply(name string) greeter {
	if name == "" {
		return nil
	}

	return &realGreeter{}
}

func (g *realGreeter) Close() error {
	g.closed = true
	return nil
}

type spyGreeter struct {
	obj     *spy.Object
	wrapped greeter
}

var greeterTable = spy.NewTable()

func init() {
	greeterTable.Register(reflect.TypeFor[greeter](), "greeter", func(t *spy.Tracer, v any) any {
		return newSpyGreeter(t, v.(greeter))
	})
}

func newSpyGreeter(t *spy.Tracer, w greeter) *spyGreeter {
	return newSpyGreeterOf(spy.NewObject(t, "Greeter"), w)
}

func newSpyGreeterOf(obj *spy.Object, w greeter) *spyGreeter {
	d := &spyGreeter{obj: obj, wrapped: w}
	d.obj.Created(context.Background())

	return d
}

func wrapGreeter(parent spy.Decorated, v greeter) greeter {
	if v == nil {
		return nil
	}

	if d, ok := v.(*spyGreeter); ok {
		return d
	}

	return newSpyGreeterOf(spy.NewChildObject(parent, "Greeter"), v)
}

func (d *spyGreeter) SpyObject() *spy.Object { return d.obj }
func (d *spyGreeter) String() string         { return d.obj.String() }
func (d *spyGreeter) Unwrap() greeter        { return d.wrapped }

func (d *spyGreeter) Greet(ctx context.Context, name string) (string, error) {
	call := d.obj.StartContext(ctx, "Greet", name)
	defer call.Recover()
	call.Trap(name)

	r0, err := d.wrapped.Greet(ctx, name)
	if err != nil {
		call.Fail(err)
		return r0, err
	}

	call.Return(r0)

	return r0, nil
}

func (d *spyGreeter) Reply(name string) greeter {
	call := d.obj.Start("Reply", name)
	defer call.Recover()
	call.Trap(name)

	r0 := d.wrapped.Reply(name)
	r0 = wrapGreeter(d, r0)

	call.Return(r0)

	return r0
}

func (d *spyGreeter) Close() error {
	call := d.obj.Start("Close")
	defer call.Recover()

	if err := d.wrapped.Close(); err != nil {
		call.Fail(err)
		return err
	}

	call.Done()

	return nil
}

var errGreet = errors.New("greeting refused")
