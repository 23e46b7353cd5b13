package metrics

import (
	"strconv"
	"time"

	"anchor-hq/anchor/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics tracks requests served by the HTTP service.
type HTTPMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewHTTPMetrics creates and registers HTTP metrics.
func NewHTTPMetrics(cfg config.MetricsConfig, registry *prometheus.Registry) *HTTPMetrics {
	hm := &HTTPMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests served",
			},
			[]string{"route", "status"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}

	registry.MustRegister(hm.requestsTotal, hm.requestDuration)

	return hm
}

// RecordRequest records one served request. Route should be the registered
// pattern, not the raw URL path, to bound label cardinality.
func (hm *HTTPMetrics) RecordRequest(route string, status int, duration time.Duration) {
	hm.requestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	hm.requestDuration.WithLabelValues(route).Observe(duration.Seconds())
}
