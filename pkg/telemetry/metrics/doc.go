// Package metrics exposes Prometheus metrics for the guardrail pipeline and
// the HTTP service.
//
// Metrics (namespace and subsystem come from configuration):
//
//   - replies_total{mode}: replies post-processed, by intent mode
//   - sentences_rewritten_total{mode}: sentences replaced by reflections
//   - banned_phrases_stripped_total: banned phrase occurrences removed
//   - fallbacks_total: rewrites that came out empty and fell back to the input
//   - processing_duration_seconds{mode}: pipeline latency
//   - http_requests_total{route,status}: HTTP requests served
//   - http_request_duration_seconds{route}: HTTP request latency
//
// Every collector owns its registry, so tests can build as many as they
// need without colliding on the global default registry.
package metrics
