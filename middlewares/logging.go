package middlewares

import (
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/backendlab/httpkit/internal"
	"github.com/backendlab/httpkit/pkg/apperr"
	"github.com/backendlab/httpkit/pkg/logger"
)

// DefaultMaxBodySize caps how many request/response body bytes are captured
// for logging. Larger bodies pass through untouched but are not logged.
const DefaultMaxBodySize = 64 * 1024

// DefaultBodylessMethods are the HTTP methods whose bodies are never parsed
// for input capture.
var DefaultBodylessMethods = []string{"GET", "HEAD", "DELETE", "OPTIONS"}

// LoggingConfig configures the request logging middleware.
type LoggingConfig struct {
	Destination     string   // logical service name tag
	SkipSubstrings  []string // route-path substrings that suppress emission
	BodylessMethods []string // methods whose bodies are not parsed
	MaxBodySize     int64    // capture cap for request and response bodies
}

// LoggingOption configures LoggingConfig.
type LoggingOption func(*LoggingConfig)

// WithDestination sets the logical service name included in every record.
func WithDestination(destination string) LoggingOption {
	return func(cfg *LoggingConfig) {
		cfg.Destination = destination
	}
}

// WithSkipSubstrings suppresses log emission for any route path containing
// one of the given substrings.
func WithSkipSubstrings(substrings ...string) LoggingOption {
	return func(cfg *LoggingConfig) {
		cfg.SkipSubstrings = substrings
	}
}

// WithBodylessMethods overrides the set of methods whose bodies are skipped.
func WithBodylessMethods(methods ...string) LoggingOption {
	return func(cfg *LoggingConfig) {
		cfg.BodylessMethods = methods
	}
}

// WithMaxBodySize overrides the body capture cap.
func WithMaxBodySize(size int64) LoggingOption {
	return func(cfg *LoggingConfig) {
		if size > 0 {
			cfg.MaxBodySize = size
		}
	}
}

// Logging returns middleware that emits exactly one structured log record
// per request, after the outcome is fully known. Successful responses pass
// through unmodified and errors are re-returned unchanged; emission failures
// are suppressed and never mask the handler's outcome.
//
// Configuration is captured once at construction. Swap the middleware to
// change it; in-flight requests keep the config they started with.
func Logging(log *slog.Logger, opts ...LoggingOption) internal.Middleware {
	cfg := &LoggingConfig{
		Destination:     "UNSET",
		BodylessMethods: DefaultBodylessMethods,
		MaxBodySize:     DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if log == nil {
		log = logger.NewNope()
	}

	bodyless := make(map[string]struct{}, len(cfg.BodylessMethods))
	for _, m := range cfg.BodylessMethods {
		bodyless[strings.ToUpper(m)] = struct{}{}
	}
	skip := append([]string(nil), cfg.SkipSubstrings...)
	destination := cfg.Destination
	maxBody := cfg.MaxBodySize

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			reqSnap := buildRequestSnapshot(c.Request(), bodyless, maxBody)
			c.ResponseWriter().CaptureBody(maxBody)
			start := time.Now()

			err := next(c)

			var (
				status   int
				respSnap *ResponseSnapshot
				errTitle string
				errMsg   string
			)
			switch {
			case err == nil:
				snap := buildResponseSnapshot(c.ResponseWriter())
				respSnap = &snap
				status = snap.Status
			default:
				if e := apperr.As(err); e != nil {
					status = e.Status
					errTitle = e.Title
					errMsg = e.Message
				} else {
					errTitle = errorTypeName(err)
					errMsg = err.Error()
					var sc internal.StatusCoder
					if errors.As(err, &sc) {
						status = sc.StatusCode()
					}
				}
			}

			emitLog(c, log, destination, skip, reqSnap, respSnap, status, errTitle, errMsg, start)

			return err
		}
	}
}

// emitLog writes the per-request record. It never panics out: a failing
// sink must not change the request's outcome.
func emitLog(
	c internal.Context,
	log *slog.Logger,
	destination string,
	skip []string,
	reqSnap RequestSnapshot,
	respSnap *ResponseSnapshot,
	status int,
	errTitle, errMsg string,
	start time.Time,
) {
	defer func() {
		_ = recover()
	}()

	for _, substring := range skip {
		if substring != "" && strings.Contains(reqSnap.Path, substring) {
			return
		}
	}

	attrs := []slog.Attr{
		slog.String("destination", destination),
		slog.String("http_method", reqSnap.Method),
		slog.String("method", reqSnap.Path),
		slog.Float64("processing_time", time.Since(start).Seconds()),
		nullableInt("http_status_code", status),
		nullableJSON("input_data", reqSnap.Input),
		nullableJSON("request_headers", reqSnap.Headers),
	}
	if respSnap != nil {
		attrs = append(attrs,
			nullableJSON("output_data", respSnap.Output),
			nullableJSON("response_headers", respSnap.Headers),
		)
	} else {
		attrs = append(attrs,
			slog.Any("output_data", nil),
			slog.Any("response_headers", nil),
		)
	}

	level := slog.LevelInfo
	if errTitle != "" {
		level = slog.LevelError
		attrs = append(attrs,
			slog.String("error_title", errTitle),
			slog.String("error_message", errMsg),
		)
	}

	log.LogAttrs(c, level, "request handled", attrs...)
}

func nullableJSON(key, value string) slog.Attr {
	if value == "" {
		return slog.Any(key, nil)
	}
	return slog.String(key, value)
}

func nullableInt(key string, value int) slog.Attr {
	if value == 0 {
		return slog.Any(key, nil)
	}
	return slog.Int(key, value)
}

// errorTypeName returns the bare runtime type name of an unclassified error,
// used as its error_title in log records.
func errorTypeName(err error) string {
	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "error"
	}
	if name := t.Name(); name != "" {
		return name
	}
	return t.String()
}
