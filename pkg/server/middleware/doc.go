// Package middleware provides the HTTP middleware chain for the
// post-processing service.
//
// The server applies, outermost first:
//
//	Recovery -> RequestID -> Logging -> Metrics -> tracing -> BodyLimit -> mux
//
// RequestID runs before Logging so every log line of a request, including
// the completion line, carries its request_id.
package middleware
