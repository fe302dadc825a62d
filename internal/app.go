package internal

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/backendlab/httpkit/pkg/apperr"
	"github.com/backendlab/httpkit/pkg/health"
	"github.com/backendlab/httpkit/pkg/logger"
)

const defaultShutdownTimeout = 30 * time.Second

// App orchestrates the application lifecycle: routing, middleware, error
// normalization, and graceful shutdown. App is immutable after creation;
// all configuration happens through New options.
type App struct {
	router                  chi.Router
	logger                  *slog.Logger
	errorHandler            ErrorHandler
	notFoundHandler         HandlerFunc
	methodNotAllowedHandler HandlerFunc
	healthConfig            *healthConfig
	baseCtx                 context.Context
	middlewares             []Middleware
	handlers                []Handler
	errorHandlerOpts        []ErrorHandlerOption
	shutdownHooks           []func(context.Context) error
	shutdownTimeout         time.Duration
	debug                   bool
}

// New creates a new application with the given options.
//
// Example:
//
//	app := httpkit.New(
//	    httpkit.WithLogger(log),
//	    httpkit.WithMiddleware(
//	        middlewares.TraceID(),
//	        middlewares.Logging(log, middlewares.WithDestination("billing-api")),
//	        middlewares.Recover(),
//	    ),
//	    httpkit.WithHandlers(handlers.NewAccounts(repo)),
//	)
func New(opts ...Option) *App {
	a := &App{
		router:          chi.NewRouter(),
		logger:          logger.NewNope(),
		shutdownTimeout: defaultShutdownTimeout,
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.errorHandler == nil {
		a.errorHandler = NewErrorHandler(a.debug, a.errorHandlerOpts...)
	}
	if a.notFoundHandler == nil {
		a.notFoundHandler = func(Context) error {
			return apperr.NotFound()
		}
	}
	if a.methodNotAllowedHandler == nil {
		a.methodNotAllowedHandler = func(Context) error {
			return apperr.UnknownAnswer()
		}
	}

	a.setupRoutes()
	return a
}

// Router returns the underlying chi.Router, for mounting into a parent mux.
func (a *App) Router() chi.Router {
	return a.router
}

// ServeHTTP makes the App usable anywhere an http.Handler is expected.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Run starts the HTTP server and blocks until shutdown.
func (a *App) Run(addr string) error {
	return runServer(runtimeConfig{
		handler:         a.router,
		address:         addr,
		logger:          a.logger,
		shutdownTimeout: a.shutdownTimeout,
		shutdownHooks:   a.shutdownHooks,
		baseCtx:         a.baseCtx,
	})
}

// setupRoutes configures the chi router with error handlers, health endpoints,
// and the registered route handlers.
func (a *App) setupRoutes() {
	a.router.NotFound(a.wrapHandler(chain(a.notFoundHandler, a.middlewares...)))
	a.router.MethodNotAllowed(a.wrapHandler(chain(a.methodNotAllowedHandler, a.middlewares...)))

	if a.healthConfig != nil {
		a.router.Get(a.healthConfig.livenessPath, health.LivenessHandler())
		a.router.Get(a.healthConfig.readinessPath, health.ReadinessHandler(
			a.healthConfig.checks,
			health.WithLogger(a.logger),
		))
	}

	r := &routerAdapter{router: a.router, app: a, middlewares: a.middlewares}
	for _, h := range a.handlers {
		h.Routes(r)
	}
}

// wrapHandler converts a HandlerFunc into an http.HandlerFunc, routing any
// returned error through the terminal error handler.
func (a *App) wrapHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(NewResponseWriter(w), r, a.logger)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

// handleError is the terminal boundary: it never re-raises.
func (a *App) handleError(c Context, err error) {
	if c.Written() {
		return
	}
	_ = a.errorHandler(c, err)
}

// healthConfig holds health check endpoint configuration.
type healthConfig struct {
	checks        health.Checks
	livenessPath  string
	readinessPath string
}

// Default health check paths.
const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// HealthOption configures health check endpoints.
type HealthOption func(*healthConfig)

// WithLivenessPath sets a custom liveness endpoint path.
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath sets a custom readiness endpoint path.
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessCheck adds a named readiness check. Checks run in parallel
// during the readiness probe.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(c *healthConfig) {
		if c.checks == nil {
			c.checks = make(health.Checks)
		}
		c.checks[name] = fn
	}
}
