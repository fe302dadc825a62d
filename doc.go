// Package httpkit is a toolkit for building HTTP backend services: an
// error taxonomy with HTTP-status mapping, structured request logging,
// JWT authentication plumbing, a generic PostgreSQL repository, pagination
// helpers, and thin Kafka wrappers.
//
// The root package re-exports the application surface; the heavy lifting
// lives in subpackages:
//
//   - pkg/apperr: classified application errors with a stable wire shape
//   - pkg/jsonenc: deterministic, key-sorted JSON serialization
//   - middlewares: request logging, panic recovery, auth, trace ids
//   - pkg/db, pkg/redis, pkg/kafka: infrastructure lifecycles
//   - pkg/repo: generic repository over pgx and squirrel
//
// A minimal service:
//
//	log := logger.New(logger.WithExtractors(middlewares.TraceIDExtractor()))
//
//	app := httpkit.New(
//	    httpkit.WithLogger(log),
//	    httpkit.WithMiddleware(
//	        middlewares.TraceID(),
//	        middlewares.Recover(),
//	        middlewares.Logging(log, middlewares.WithDestination("billing-api")),
//	    ),
//	    httpkit.WithErrorRemaps(httpkit.RedefineIs(repo.ErrNotFound, apperr.NotFound)),
//	    httpkit.WithHandlers(handlers...),
//	)
//
//	if err := app.Run(":8080"); err != nil {
//	    log.Error("server stopped", "error", err)
//	}
//
// Handlers return errors instead of writing error responses; the terminal
// error handler converts classified and unclassified failures alike into a
// stable JSON body.
package httpkit
