// Package tracing provides OpenTelemetry distributed tracing for the
// post-processing service.
//
// Spans are exported over OTLP gRPC to a collector. Sampling is parent-based,
// so a caller that already sampled the conversation turn keeps its decision.
// W3C Trace Context and Baggage headers are extracted on ingress.
//
// # Configuration
//
//	telemetry:
//	  tracing:
//	    enabled: true
//	    service_name: anchor
//	    sampler: ratio
//	    sample_ratio: 0.1
//	    exporter: otlp
//	    endpoint: localhost:4317
//	    insecure: true
//
// # Privacy
//
// Span attributes carry counts and modes only. Reply text and user messages
// are never attached to spans.
package tracing
