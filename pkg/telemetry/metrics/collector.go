package metrics

import (
	"time"

	"anchor-hq/anchor/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Collector owns the service's Prometheus metrics. A disabled collector
// accepts every call and records nothing.
type Collector struct {
	config   config.MetricsConfig
	registry *prometheus.Registry

	guardrail *GuardrailMetrics
	http      *HTTPMetrics
}

// NewCollector creates a collector registered on registry. A nil registry
// gets a fresh one with the Go runtime and process collectors attached.
func NewCollector(cfg config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}

	return &Collector{
		config:    cfg,
		registry:  registry,
		guardrail: NewGuardrailMetrics(cfg, registry),
		http:      NewHTTPMetrics(cfg, registry),
	}
}

// Enabled reports whether the collector records anything.
func (c *Collector) Enabled() bool {
	return c != nil && c.config.Enabled
}

// RecordReply records one pipeline run.
//
// Parameters:
//   - mode: intent mode ("advice", "perspective", "strict", "passthrough")
//   - replaced: sentences replaced by reflections
//   - stripped: banned phrase occurrences removed
//   - fallback: whether the empty-result fallback fired
//   - duration: time spent in the pipeline
func (c *Collector) RecordReply(mode string, replaced, stripped int, fallback bool, duration time.Duration) {
	if !c.Enabled() {
		return
	}

	c.guardrail.RecordReply(mode, replaced, stripped, fallback, duration)
}

// RecordHTTPRequest records one served HTTP request.
func (c *Collector) RecordHTTPRequest(route string, status int, duration time.Duration) {
	if !c.Enabled() {
		return
	}

	c.http.RecordRequest(route, status, duration)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
