package internal

import (
	"context"
	"log/slog"
	"time"
)

// Option configures the application.
type Option func(*App)

// WithMiddleware adds global middleware, applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHandlers registers handlers that declare routes.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithLogger sets the application logger.
func WithLogger(log *slog.Logger) Option {
	return func(a *App) {
		if log != nil {
			a.logger = log
		}
	}
}

// WithDebug enables debug mode: error responses include debug detail.
// The flag is fixed for the app's lifetime, never per-request.
func WithDebug(debug bool) Option {
	return func(a *App) {
		a.debug = debug
	}
}

// WithErrorHandler replaces the default error-normalization handler.
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithErrorRemaps adds remap rules to the default error-normalization handler.
// Ignored when WithErrorHandler installs a custom handler.
func WithErrorRemaps(opts ...ErrorHandlerOption) Option {
	return func(a *App) {
		a.errorHandlerOpts = append(a.errorHandlerOpts, opts...)
	}
}

// WithNotFoundHandler sets a custom 404 handler.
// The default returns apperr.NotFound().
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.notFoundHandler = h
	}
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
// The default returns apperr.UnknownAnswer().
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.methodNotAllowedHandler = h
	}
}

// WithHealthChecks enables liveness/readiness endpoints.
//
// Example:
//
//	httpkit.WithHealthChecks(
//	    httpkit.WithReadinessCheck("db", db.Healthcheck(pool)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

// WithShutdownHook registers a hook run during graceful shutdown.
func WithShutdownHook(hooks ...func(context.Context) error) Option {
	return func(a *App) {
		a.shutdownHooks = append(a.shutdownHooks, hooks...)
	}
}

// WithShutdownTimeout sets the graceful shutdown deadline. Default: 30s.
func WithShutdownTimeout(d time.Duration) Option {
	return func(a *App) {
		if d > 0 {
			a.shutdownTimeout = d
		}
	}
}

// WithBaseContext sets the root context for the server lifetime.
// Cancelling it triggers graceful shutdown.
func WithBaseContext(ctx context.Context) Option {
	return func(a *App) {
		a.baseCtx = ctx
	}
}
