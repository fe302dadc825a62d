package kafka

import (
	"context"
	"log/slog"

	"github.com/backendlab/httpkit/pkg/logger"
)

// TraceHeader is the message header carrying the trace id across the broker.
const TraceHeader = "trace_id"

type traceIDKey struct{}

// ContextWithTraceID stores a trace id in the context for the duration of a
// message's handling.
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceIDFromContext returns the trace id stored by the consumer, or "".
func TraceIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(traceIDKey{}).(string)
	return v
}

// TraceIDExtractor returns a logger extractor that adds the message's trace
// id to every log record emitted while handling it.
func TraceIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v := TraceIDFromContext(ctx); v != "" {
			return slog.String("trace_id", v), true
		}
		return slog.Attr{}, false
	}
}
