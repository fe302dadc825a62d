package logger

import (
	"io"
	"log/slog"
	"os"
)

type config struct {
	output     io.Writer
	level      slog.Level
	extractors []ContextExtractor
	sentry     *SentryConfig
}

// Option configures the logger factory.
type Option func(*config)

// WithOutput sets the destination writer. Default: os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithLevel sets the minimum log level. Default: slog.LevelInfo.
func WithLevel(level slog.Level) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithExtractors registers context extractors applied on every log call.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) {
		c.extractors = append(c.extractors, extractors...)
	}
}

// WithSentry mirrors warnings and errors to Sentry in addition to the primary
// output. Ignored when the DSN is empty.
func WithSentry(cfg SentryConfig) Option {
	return func(c *config) {
		c.sentry = &cfg
	}
}

// New creates a JSON-formatted logger.
func New(opts ...Option) *slog.Logger {
	cfg := &config{
		output: os.Stdout,
		level:  slog.LevelInfo,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var handler slog.Handler = slog.NewJSONHandler(cfg.output, &slog.HandlerOptions{
		Level: cfg.level,
	})

	if cfg.sentry != nil && cfg.sentry.DSN != "" {
		if sentryHandler, err := newSentryHandler(*cfg.sentry); err != nil {
			// Degrade to the primary output; a broken error tracker must not
			// take logging down with it.
			slog.New(handler).Error("sentry init failed", slog.String("error", err.Error()))
		} else {
			handler = newMultiHandler(handler, sentryHandler)
		}
	}

	return slog.New(Decorate(handler, cfg.extractors...))
}

// NewNope creates a no-op logger that discards all output.
// Use this as a default when logging is not configured.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
