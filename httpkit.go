package httpkit

import (
	"github.com/backendlab/httpkit/internal"
	"github.com/backendlab/httpkit/pkg/logger"
)

// Type aliases - public API
type (
	// App orchestrates the application lifecycle: routing, middleware,
	// error normalization, and graceful shutdown.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler is the terminal boundary for errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// ErrorHandlerOption configures the error-normalization handler.
	ErrorHandlerOption = internal.ErrorHandlerOption

	// Variant constructs an error taxonomy member; the apperr constructors
	// satisfy it.
	Variant = internal.Variant

	// ResponseWriter wraps http.ResponseWriter with status and body capture.
	ResponseWriter = internal.ResponseWriter

	// Extractor tries multiple credential sources in order.
	Extractor = internal.Extractor

	// ExtractorSource extracts a credential or parameter from a request.
	ExtractorSource = internal.ExtractorSource

	// ContextExtractor extracts a slog attribute from context.
	// Used with logger.New to add request-scoped values to logs.
	ContextExtractor = logger.ContextExtractor
)

// New creates a new application with the given options.
var New = internal.New

// Application options.
var (
	WithMiddleware              = internal.WithMiddleware
	WithHandlers                = internal.WithHandlers
	WithLogger                  = internal.WithLogger
	WithDebug                   = internal.WithDebug
	WithErrorHandler            = internal.WithErrorHandler
	WithErrorRemaps             = internal.WithErrorRemaps
	WithNotFoundHandler         = internal.WithNotFoundHandler
	WithMethodNotAllowedHandler = internal.WithMethodNotAllowedHandler
	WithHealthChecks            = internal.WithHealthChecks
	WithShutdownHook            = internal.WithShutdownHook
	WithShutdownTimeout         = internal.WithShutdownTimeout
	WithBaseContext             = internal.WithBaseContext
)

// Health endpoint options, used inside WithHealthChecks.
var (
	WithLivenessPath   = internal.WithLivenessPath
	WithReadinessPath  = internal.WithReadinessPath
	WithReadinessCheck = internal.WithReadinessCheck
)

// Error-normalization handler construction and remap rules.
var (
	NewErrorHandler     = internal.NewErrorHandler
	RedefineStatus      = internal.RedefineStatus
	RedefineIs          = internal.RedefineIs
	WithFallbackVariant = internal.WithFallbackVariant
)

// RedefineAs remaps errors matching the type T onto a taxonomy variant.
func RedefineAs[T error](variant Variant) ErrorHandlerOption {
	return internal.RedefineAs[T](variant)
}

// Credential extraction sources.
var (
	NewExtractor    = internal.NewExtractor
	FromHeader      = internal.FromHeader
	FromBearerToken = internal.FromBearerToken
	FromQuery       = internal.FromQuery
	FromCookie      = internal.FromCookie
	FromParam       = internal.FromParam
	FromForm        = internal.FromForm
)
