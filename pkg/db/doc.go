// Package db manages the PostgreSQL connection pool: environment-driven
// configuration, connection with retry, goose migrations, transactions, and
// probes that plug into the health and shutdown surfaces of the app.
//
//	cfg, err := db.LoadConfig()
//	pool, err := db.Connect(ctx, cfg)
//
//	app := httpkit.New(
//	    httpkit.WithHealthChecks(httpkit.WithReadinessCheck("postgres", db.Healthcheck(pool))),
//	    httpkit.WithShutdownHook(db.Shutdown(pool)),
//	)
package db
