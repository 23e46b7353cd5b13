package tracing

import (
	"context"
	"errors"
	"fmt"

	"anchor-hq/anchor/pkg/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"google.golang.org/grpc/credentials/insecure"
)

// InstrumentationName identifies spans created by this package.
const InstrumentationName = "anchor-hq/anchor"

// Exporter names accepted in TracingConfig.Exporter.
const (
	ExporterOTLP = "otlp"
	ExporterNone = "none"
)

// Tracer wraps an OpenTelemetry tracer provider. A disabled Tracer hands out
// noop spans.
type Tracer struct {
	tracer     trace.Tracer
	provider   *sdktrace.TracerProvider
	propagator propagation.TextMapPropagator
	enabled    bool
}

// New creates a Tracer from cfg. When tracing is disabled the returned tracer
// is a noop and never dials the collector.
func New(cfg config.TracingConfig, serviceVersion string) (*Tracer, error) {
	if !cfg.Enabled {
		return disabled(), nil
	}

	exporter, err := createExporter(cfg)
	if err != nil {
		return nil, err
	}

	var opts []sdktrace.TracerProviderOption
	if exporter != nil {
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}
	return newTracer(cfg, serviceVersion, opts...)
}

// NewWithExporter creates an enabled Tracer that exports every span
// synchronously to exporter.
func NewWithExporter(cfg config.TracingConfig, serviceVersion string, exporter sdktrace.SpanExporter) (*Tracer, error) {
	if exporter == nil {
		return nil, errors.New("tracing: exporter is nil")
	}
	return newTracer(cfg, serviceVersion, sdktrace.WithSyncer(exporter))
}

func newTracer(cfg config.TracingConfig, serviceVersion string, opts ...sdktrace.TracerProviderOption) (*Tracer, error) {
	sampler, err := createSampler(cfg.Sampler, cfg.SampleRatio)
	if err != nil {
		return nil, fmt.Errorf("failed to create sampler: %w", err)
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	opts = append(opts, sdktrace.WithResource(res), sdktrace.WithSampler(sampler))
	provider := sdktrace.NewTracerProvider(opts...)

	return &Tracer{
		tracer:     provider.Tracer(InstrumentationName),
		provider:   provider,
		propagator: newPropagator(),
		enabled:    true,
	}, nil
}

func disabled() *Tracer {
	return &Tracer{
		tracer:     noop.NewTracerProvider().Tracer(InstrumentationName),
		propagator: newPropagator(),
	}
}

// Install registers the tracer provider and propagator as the process-wide
// OpenTelemetry globals. It is a no-op for a disabled tracer.
func (t *Tracer) Install() {
	if !t.enabled {
		return
	}
	otel.SetTracerProvider(t.provider)
	otel.SetTextMapPropagator(t.propagator)
}

// Start creates a span as a child of any span in ctx.
//
//	ctx, span := tracer.Start(ctx, "guardrail.process")
//	defer span.End()
func (t *Tracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name, opts...)
}

// Shutdown flushes pending spans and stops the exporter.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if !t.enabled || t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}

// Enabled reports whether spans are recorded.
func (t *Tracer) Enabled() bool {
	return t != nil && t.enabled
}

// Propagator returns the W3C trace context and baggage propagator.
func (t *Tracer) Propagator() propagation.TextMapPropagator {
	return t.propagator
}

func newPropagator() propagation.TextMapPropagator {
	return propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	)
}

func createExporter(cfg config.TracingConfig) (sdktrace.SpanExporter, error) {
	switch cfg.Exporter {
	case ExporterOTLP:
		return createOTLPExporter(cfg)
	case ExporterNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported exporter: %s", cfg.Exporter)
	}
}

// createOTLPExporter creates an OTLP gRPC exporter. The connection is lazy,
// so a missing collector does not block startup.
func createOTLPExporter(cfg config.TracingConfig) (sdktrace.SpanExporter, error) {
	opts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithTLSCredentials(insecure.NewCredentials()))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, otlptracegrpc.WithTimeout(cfg.Timeout))
	}

	exporter, err := otlptrace.New(context.Background(), otlptracegrpc.NewClient(opts...))
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}
	return exporter, nil
}
