package tracing

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// TraceIDHeader carries the trace ID back to HTTP callers.
const TraceIDHeader = "X-Trace-ID"

// Extract returns ctx carrying the remote span context found in headers.
func (t *Tracer) Extract(ctx context.Context, headers http.Header) context.Context {
	return t.propagator.Extract(ctx, propagation.HeaderCarrier(headers))
}

// Inject writes the span context of ctx into headers.
func (t *Tracer) Inject(ctx context.Context, headers http.Header) {
	t.propagator.Inject(ctx, propagation.HeaderCarrier(headers))
}

// Middleware starts a server span for every request, continuing any trace
// announced by the caller. The trace ID is echoed in X-Trace-ID when the
// span is sampled.
func (t *Tracer) Middleware(next http.Handler) http.Handler {
	if !t.Enabled() {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := t.Extract(r.Context(), r.Header)
		ctx, span := t.Start(ctx, r.Method+" "+r.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer),
		)
		defer span.End()

		SetRequestAttributes(span, r)
		if sc := span.SpanContext(); sc.IsValid() {
			w.Header().Set(TraceIDHeader, sc.TraceID().String())
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TraceID returns the trace ID of the span in ctx, or "" when there is none.
func TraceID(ctx context.Context) string {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}
