// Package middlewares provides HTTP middleware built on the internal
// handler chain: structured request logging, panic recovery, JWT
// authentication, and trace-id propagation.
//
// Middleware composes outermost-first:
//
//	app := httpkit.New(
//	    httpkit.WithMiddleware(
//	        middlewares.TraceID(),
//	        middlewares.Recover(),
//	        middlewares.Logging(log, middlewares.WithDestination("billing-api")),
//	        middlewares.Auth(jwtService),
//	    ),
//	)
//
// The logging middleware emits exactly one record per request and re-raises
// errors unchanged; translating errors into HTTP responses is the job of the
// terminal error handler, not of any middleware here.
package middlewares
