package middlewares

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/backendlab/httpkit/internal"
	"github.com/backendlab/httpkit/pkg/logger"
)

// DefaultTraceIDHeader is the header checked for an incoming trace id and
// set on every response.
const DefaultTraceIDHeader = "X-Trace-Id"

type traceIDKey struct{}

// TraceIDConfig configures the trace-id middleware.
type TraceIDConfig struct {
	Header    string
	Generator func() string
}

// TraceIDOption configures TraceIDConfig.
type TraceIDOption func(*TraceIDConfig)

// WithTraceIDHeader sets the header used to propagate the trace id.
func WithTraceIDHeader(header string) TraceIDOption {
	return func(cfg *TraceIDConfig) {
		if header != "" {
			cfg.Header = header
		}
	}
}

// WithTraceIDGenerator sets the generator used when the request carries no
// trace id.
func WithTraceIDGenerator(gen func() string) TraceIDOption {
	return func(cfg *TraceIDConfig) {
		if gen != nil {
			cfg.Generator = gen
		}
	}
}

// TraceID returns middleware that adopts the inbound trace id or generates
// one, stores it in the request context, and echoes it on the response.
func TraceID(opts ...TraceIDOption) internal.Middleware {
	cfg := &TraceIDConfig{
		Header:    DefaultTraceIDHeader,
		Generator: uuid.NewString,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			traceID := c.Header(cfg.Header)
			if traceID == "" {
				traceID = cfg.Generator()
			}

			c.Set(traceIDKey{}, traceID)
			c.SetHeader(cfg.Header, traceID)

			return next(c)
		}
	}
}

// GetTraceID returns the request's trace id, or "" when the middleware is
// not installed.
func GetTraceID(c internal.Context) string {
	v, _ := c.Get(traceIDKey{}).(string)
	return v
}

// TraceIDExtractor returns a logger extractor that adds the trace id to
// every log record in the request scope.
func TraceIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v, ok := ctx.Value(traceIDKey{}).(string); ok && v != "" {
			return slog.String("trace_id", v), true
		}
		return slog.Attr{}, false
	}
}
