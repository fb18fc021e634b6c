// Package handlers contains the reusable pieces of the HTTP interface:
// health checks, the per-client rate limiter, session token extraction and
// small middleware.
//
// Health checks are registered on a composite checker and run in parallel:
//
//	checker := handlers.NewCompositeHealthChecker("v1.0.0")
//	checker.AddCheck("catalog", catalogCheck)
//	checker.AddReadinessCheck("redis", redisPing)
//
//	status := checker.Check(ctx)
//
// A failing readiness check takes the instance out of rotation without
// failing liveness.
package handlers
