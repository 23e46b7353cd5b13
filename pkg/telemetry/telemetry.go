package telemetry

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"anchor-hq/anchor/pkg/config"
	"anchor-hq/anchor/pkg/telemetry/health"
	"anchor-hq/anchor/pkg/telemetry/logging"
	"anchor-hq/anchor/pkg/telemetry/metrics"
	"anchor-hq/anchor/pkg/telemetry/tracing"
)

// BuildInfo identifies the running binary.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
}

// Telemetry owns the logger, metrics collector, tracer and health checker.
type Telemetry struct {
	build   BuildInfo
	logger  *slog.Logger
	metrics *metrics.Collector
	tracer  *tracing.Tracer
	health  *health.Checker
}

// New builds every telemetry component from cfg. Logs go to out.
func New(cfg config.TelemetryConfig, build BuildInfo, out io.Writer) (*Telemetry, error) {
	logCfg := logging.FromConfig(cfg.Logging)
	logCfg.Writer = out
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	tracer, err := tracing.New(cfg.Tracing, build.Version)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	tracer.Install()

	return &Telemetry{
		build:   build,
		logger:  logger,
		metrics: metrics.NewCollector(cfg.Metrics, nil),
		tracer:  tracer,
		health:  health.New(0),
	}, nil
}

// Logger returns the structured logger.
func (t *Telemetry) Logger() *slog.Logger { return t.logger }

// Metrics returns the Prometheus collector.
func (t *Telemetry) Metrics() *metrics.Collector { return t.metrics }

// Tracer returns the tracer. It is a noop when tracing is disabled.
func (t *Telemetry) Tracer() *tracing.Tracer { return t.tracer }

// Health returns the readiness checker.
func (t *Telemetry) Health() *health.Checker { return t.health }

// Build returns the build information passed to New.
func (t *Telemetry) Build() BuildInfo { return t.build }

// Shutdown flushes pending spans.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if err := t.tracer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down tracer: %w", err)
	}
	return nil
}
