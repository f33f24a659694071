package spydriver

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"log/slog"

	"github.com/AntonStoeckl/sqlspy-go/sqlspy"
	"github.com/AntonStoeckl/sqlspy-go/sqlspy/spy"
)

// DriverName is the name the default Router is registered under with database/sql.
const DriverName = "sqlspy"

const (
	logMsgRouting       = "routing sqlspy connection"
	logMsgRoutingFailed = "sqlspy connection could not be routed"
	logMsgCloseFailed   = "failed to close connection that could not be wrapped"
	logAttrProvider     = "provider"
	logAttrLiteral      = "literal"
	logAttrError        = "error"
)

// Router accepts sqlspy identifiers, connects through the real driver and returns decorated connections.
//
// Identifiers have the form "sql:spy:<driverName>:<dsn>" or "sql:spy#<provider>:<driverName>:<dsn>".
// With an explicit provider, "sql:spy#<provider>:-:<dsn>" hands dsn to the provider's driver as it is.
//
// A Router is safe for concurrent use.
type Router struct {
	tracer    *spy.Tracer
	table     *spy.Table
	resolver  Resolver
	providers *Providers
	logger    sqlspy.Logger
}

// Option defines a functional option for configuring a Router.
type Option func(*Router) error

// WithTracer sets the tracer of the decorators the Router creates. Defaults to spy.Default.
func WithTracer(tracer *spy.Tracer) Option {
	return func(r *Router) error {
		r.tracer = tracer
		return nil
	}
}

// WithTable sets the decorator table. Defaults to Decorators.
func WithTable(table *spy.Table) Option {
	return func(r *Router) error {
		if table == nil {
			return ErrNilTable
		}

		r.table = table

		return nil
	}
}

// WithResolver sets how standard identifiers are resolved. Defaults to RegistryResolver.
func WithResolver(resolver Resolver) Option {
	return func(r *Router) error {
		if resolver == nil {
			return ErrNilResolver
		}

		r.resolver = resolver

		return nil
	}
}

// WithProviders sets the providers that explicit identifiers can name. Defaults to DefaultProviders.
func WithProviders(providers *Providers) Option {
	return func(r *Router) error {
		if providers == nil {
			return ErrNilProviders
		}

		r.providers = providers

		return nil
	}
}

// WithLogger sets the logger for routing messages. Defaults to slog.Default at the time of logging.
func WithLogger(logger sqlspy.Logger) Option {
	return func(r *Router) error {
		if logger == nil {
			return ErrNilLogger
		}

		r.logger = logger

		return nil
	}
}

// NewRouter creates a Router.
func NewRouter(options ...Option) (*Router, error) {
	r := &Router{
		table:     Decorators,
		resolver:  RegistryResolver{},
		providers: DefaultProviders(),
	}

	for _, option := range options {
		if err := option(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

var defaultRouter = func() *Router {
	r, err := NewRouter()
	if err != nil {
		panic(err)
	}

	return r
}()

func init() {
	sql.Register(DriverName, defaultRouter)
}

// Default returns the Router registered with database/sql as "sqlspy".
func Default() *Router {
	return defaultRouter
}

// Accepts reports whether id is a sqlspy identifier.
func (r *Router) Accepts(id string) bool {
	return Accepts(id)
}

// Connect connects through the driver id routes to and returns the decorated connection.
// Identifiers that are not sqlspy identifiers yield ErrNotMine. Routing and wrapping failures are
// reported as sqlspy.ErrConnectFailed joined with the cause, errors of the real driver unchanged.
func (r *Router) Connect(ctx context.Context, id string) (driver.Conn, error) {
	c, err := r.openConnector(id)
	if err != nil {
		return nil, err
	}

	return c.Connect(ctx)
}

// Open implements driver.Driver.
func (r *Router) Open(id string) (driver.Conn, error) {
	return r.Connect(context.Background(), id)
}

// OpenConnector implements driver.DriverContext. Routing happens once, every Connect of the
// returned connector connects through the real driver.
func (r *Router) OpenConnector(id string) (driver.Connector, error) {
	c, err := r.openConnector(id)
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (r *Router) openConnector(id string) (*connector, error) {
	route, err := ParseRoute(id)
	if errors.Is(err, ErrNotMine) {
		return nil, err
	}

	if err != nil {
		return nil, r.routingFailed(route, err)
	}

	r.log().Debug(logMsgRouting, logAttrProvider, route.Provider, logAttrLiteral, route.Literal)

	var drv driver.Driver
	dsn := route.Target

	if route.Provider != "" {
		if drv, err = r.providers.Init(route.Provider); err != nil {
			return nil, r.routingFailed(route, err)
		}
	}

	if !route.Literal {
		if drv, dsn, err = r.resolver.Resolve(route.Target); err != nil {
			return nil, r.routingFailed(route, err)
		}
	}

	c := &connector{router: r, driver: drv, dsn: dsn}

	if dc, ok := drv.(driver.DriverContext); ok {
		if c.delegate, err = dc.OpenConnector(dsn); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func (r *Router) routingFailed(route Route, err error) error {
	r.log().Warn(logMsgRoutingFailed, logAttrProvider, route.Provider, logAttrError, err.Error())

	return errors.Join(sqlspy.ErrConnectFailed, err)
}

func (r *Router) wrap(conn driver.Conn) (driver.Conn, error) {
	wrapped, err := spy.Wrap[driver.Conn](r.table, r.tracer, conn)
	if err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			r.log().Warn(logMsgCloseFailed, logAttrError, closeErr.Error())
		}

		return nil, errors.Join(sqlspy.ErrConnectFailed, err)
	}

	return wrapped, nil
}

func (r *Router) log() sqlspy.Logger {
	if r.logger != nil {
		return r.logger
	}

	return slog.Default()
}

// connector is the routed connector handed to database/sql.
type connector struct {
	router   *Router
	driver   driver.Driver
	dsn      string
	delegate driver.Connector
}

func (c *connector) Connect(ctx context.Context) (driver.Conn, error) {
	var conn driver.Conn
	var err error

	if c.delegate != nil {
		conn, err = c.delegate.Connect(ctx)
	} else {
		conn, err = c.driver.Open(c.dsn)
	}

	if err != nil {
		return nil, err
	}

	return c.router.wrap(conn)
}

func (c *connector) Driver() driver.Driver {
	return c.router
}

// Close closes the delegate connector if it can be closed. database/sql calls it from DB.Close.
func (c *connector) Close() error {
	if closer, ok := c.delegate.(io.Closer); ok {
		return closer.Close()
	}

	return nil
}
