package tracing

import (
	"net/http"

	"anchor-hq/anchor/pkg/guardrail"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys. Conversation text is never recorded.
const (
	AttrGuardrailMode        = "anchor.guardrail.mode"
	AttrGuardrailAdvice      = "anchor.guardrail.asked_for_advice"
	AttrGuardrailPerspective = "anchor.guardrail.asked_for_perspective"
	AttrGuardrailSentences   = "anchor.guardrail.sentences"
	AttrGuardrailReplaced    = "anchor.guardrail.replaced"
	AttrGuardrailStripped    = "anchor.guardrail.stripped"
	AttrGuardrailFallback    = "anchor.guardrail.fallback"
	AttrReplyBytes           = "anchor.reply.bytes"

	AttrHTTPMethod    = "http.method"
	AttrHTTPRoute     = "http.route"
	AttrHTTPRequestID = "http.request_id"
	AttrHTTPStatus    = "http.status_code"
)

// SetGuardrailAttributes records the outcome of one pipeline run.
func SetGuardrailAttributes(span trace.Span, res guardrail.Result) {
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(
		attribute.String(AttrGuardrailMode, res.Mode()),
		attribute.Bool(AttrGuardrailAdvice, res.Flags.AskedForAdvice),
		attribute.Bool(AttrGuardrailPerspective, res.Flags.AskedForPerspective),
		attribute.Int(AttrGuardrailSentences, res.Sentences),
		attribute.Int(AttrGuardrailReplaced, res.Replaced),
		attribute.Int(AttrGuardrailStripped, res.Stripped),
		attribute.Bool(AttrGuardrailFallback, res.Fallback),
		attribute.Int(AttrReplyBytes, len(res.Text)),
	)
}

// SetRequestAttributes records the HTTP method and route of r.
func SetRequestAttributes(span trace.Span, r *http.Request) {
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(
		attribute.String(AttrHTTPMethod, r.Method),
		attribute.String(AttrHTTPRoute, r.URL.Path),
	)
	if id := r.Header.Get("X-Request-ID"); id != "" {
		span.SetAttributes(attribute.String(AttrHTTPRequestID, id))
	}
}

// SetStatusCode records the response status and marks 5xx responses as errors.
func SetStatusCode(span trace.Span, status int) {
	span.SetAttributes(attribute.Int(AttrHTTPStatus, status))
	if status >= http.StatusInternalServerError {
		span.SetStatus(codes.Error, http.StatusText(status))
	}
}

// SetError records err on span and marks it failed.
func SetError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
