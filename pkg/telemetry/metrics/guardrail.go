package metrics

import (
	"time"

	"anchor-hq/anchor/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// GuardrailMetrics tracks post-processing outcomes.
type GuardrailMetrics struct {
	repliesTotal       *prometheus.CounterVec
	rewrittenTotal     *prometheus.CounterVec
	strippedTotal      prometheus.Counter
	fallbacksTotal     prometheus.Counter
	processingDuration *prometheus.HistogramVec
}

// NewGuardrailMetrics creates and registers guardrail metrics.
func NewGuardrailMetrics(cfg config.MetricsConfig, registry *prometheus.Registry) *GuardrailMetrics {
	gm := &GuardrailMetrics{
		repliesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "replies_total",
				Help:      "Total number of assistant replies post-processed",
			},
			[]string{"mode"},
		),

		rewrittenTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "sentences_rewritten_total",
				Help:      "Total number of sentences replaced by reflections",
			},
			[]string{"mode"},
		),

		strippedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "banned_phrases_stripped_total",
				Help:      "Total number of banned phrase occurrences removed",
			},
		),

		fallbacksTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "fallbacks_total",
				Help:      "Total number of rewrites that fell back to the original text",
			},
		),

		processingDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "processing_duration_seconds",
				Help:      "Duration of reply post-processing in seconds",
				// Regex passes over one reply: 10µs to ~80ms
				Buckets: prometheus.ExponentialBuckets(0.00001, 2, 14),
			},
			[]string{"mode"},
		),
	}

	registry.MustRegister(
		gm.repliesTotal,
		gm.rewrittenTotal,
		gm.strippedTotal,
		gm.fallbacksTotal,
		gm.processingDuration,
	)

	return gm
}

// RecordReply records one pipeline run.
func (gm *GuardrailMetrics) RecordReply(mode string, replaced, stripped int, fallback bool, duration time.Duration) {
	gm.repliesTotal.WithLabelValues(mode).Inc()
	gm.processingDuration.WithLabelValues(mode).Observe(duration.Seconds())

	if replaced > 0 {
		gm.rewrittenTotal.WithLabelValues(mode).Add(float64(replaced))
	}
	if stripped > 0 {
		gm.strippedTotal.Add(float64(stripped))
	}
	if fallback {
		gm.fallbacksTotal.Inc()
	}
}
