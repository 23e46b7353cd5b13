package middleware

import (
	"net/http"
	"time"

	"anchor-hq/anchor/pkg/telemetry/metrics"
)

// OtherRoute labels requests to paths outside the known route set.
const OtherRoute = "other"

// Metrics records request counts and latency per route. Paths not in routes
// share the "other" label to bound label cardinality.
func Metrics(collector *metrics.Collector, routes ...string) func(http.Handler) http.Handler {
	known := make(map[string]struct{}, len(routes))
	for _, route := range routes {
		known[route] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		if !collector.Enabled() {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := newResponseWriter(w)

			next.ServeHTTP(rw, r)

			route := OtherRoute
			if _, ok := known[r.URL.Path]; ok {
				route = r.URL.Path
			}
			collector.RecordHTTPRequest(route, rw.statusCode, time.Since(start))
		})
	}
}
