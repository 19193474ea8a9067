// Package health serves liveness and readiness probes for the worker process.
//
// Readiness is the conjunction of named dependency checks such as the
// Postgres pool, the Redis client and the AMQP connection. The same checks
// back the one-shot health command through Probe.
//
//	srv := health.NewServer(cfg, log,
//		health.Check{Name: "postgres", Fn: pg.Healthcheck(pool)},
//	)
//	g.Go(func() error { return srv.Run(ctx) })
package health
