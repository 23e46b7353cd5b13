package tracing

import (
	"fmt"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	// SamplerAlways samples every trace.
	SamplerAlways = "always"

	// SamplerNever samples no root traces.
	SamplerNever = "never"

	// SamplerRatio samples a fraction of traces by trace ID.
	SamplerRatio = "ratio"
)

// createSampler returns the sampler for strategy. Every sampler is wrapped in
// ParentBased so an upstream sampling decision carried in traceparent wins.
func createSampler(strategy string, ratio float64) (sdktrace.Sampler, error) {
	var root sdktrace.Sampler

	switch strategy {
	case SamplerAlways:
		root = sdktrace.AlwaysSample()
	case SamplerNever:
		root = sdktrace.NeverSample()
	case SamplerRatio, "":
		if ratio < 0 || ratio > 1 {
			return nil, fmt.Errorf("sample ratio must be between 0.0 and 1.0, got %f", ratio)
		}
		root = sdktrace.TraceIDRatioBased(ratio)
	default:
		return nil, fmt.Errorf("unsupported sampler: %s", strategy)
	}

	return sdktrace.ParentBased(root), nil
}
