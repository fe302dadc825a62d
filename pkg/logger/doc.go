// Package logger builds structured slog loggers for httpkit services.
//
// The factory produces JSON loggers enriched with request-scoped attributes
// pulled from context on every log call:
//
//	log := logger.New(
//	    logger.WithExtractors(middlewares.TraceIDExtractor()),
//	)
//	log.InfoContext(ctx, "request handled", slog.Int("status", 200))
//
// An optional Sentry destination mirrors warnings and errors to Sentry while
// stdout logging keeps working unchanged; when no DSN is configured the logger
// degrades to stdout only, so the same code path works in development.
package logger
