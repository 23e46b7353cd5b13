// Package server runs the guardrail as an HTTP service.
//
// # Routes
//
//   - POST /v1/postprocess: rewrite one assistant reply
//   - GET /health: liveness probe
//   - GET /ready: readiness probe, runs the guardrail self-check
//   - GET /version: build information
//   - GET /metrics: Prometheus metrics, when enabled
//
// # Graceful Shutdown
//
// Start blocks until the context is cancelled, SIGINT or SIGTERM arrives, or
// Shutdown is called. In-flight requests get up to server.shutdown_timeout to
// finish.
package server
