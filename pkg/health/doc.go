// Package health provides HTTP handlers for liveness and readiness probes.
//
// [LivenessHandler] always responds OK; [ReadinessHandler] runs a set of
// named [Checks] concurrently and returns 503 when any fail. Handlers
// respond with plain text by default and JSON when requested via the Accept
// header or ?format=json:
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "postgres": db.Healthcheck(pool),
//	    "redis":    redis.Healthcheck(client),
//	}, health.WithLogger(log)))
package health
