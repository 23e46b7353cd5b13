package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"anchor-hq/anchor/pkg/guardrail"
	"anchor-hq/anchor/pkg/server/middleware"
	"anchor-hq/anchor/pkg/telemetry/metrics"
	"anchor-hq/anchor/pkg/telemetry/tracing"
)

// PostprocessHandler runs assistant replies through the guardrail pipeline.
type PostprocessHandler struct {
	pipeline *guardrail.Pipeline
	metrics  *metrics.Collector
	tracer   *tracing.Tracer
	logger   *slog.Logger
}

// NewPostprocessHandler creates the handler. metrics and tracer may be
// disabled instances but must not be nil.
func NewPostprocessHandler(p *guardrail.Pipeline, m *metrics.Collector, t *tracing.Tracer, logger *slog.Logger) *PostprocessHandler {
	return &PostprocessHandler{pipeline: p, metrics: m, tracer: t, logger: logger}
}

func (h *PostprocessHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		middleware.WriteError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed,
			"Method "+r.Method+" not allowed. Use POST instead.")
		return
	}

	var req PostprocessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			middleware.WriteError(w, http.StatusRequestEntityTooLarge, CodeBodyTooLarge,
				"Request body too large.")
			return
		}
		h.logger.WarnContext(ctx, "failed to parse request", "error", err)
		middleware.WriteError(w, http.StatusBadRequest, CodeInvalidJSON, "Request body is not valid JSON.")
		return
	}
	if req.Reply == nil {
		middleware.WriteError(w, http.StatusBadRequest, CodeMissingField, "Field 'reply' is required.")
		return
	}

	ctx, span := h.tracer.Start(ctx, "guardrail.process")
	start := time.Now()
	res := h.pipeline.Run(*req.Reply, req.UserMessage())
	elapsed := time.Since(start)
	tracing.SetGuardrailAttributes(span, res)
	span.End()

	h.metrics.RecordReply(res.Mode(), res.Replaced, res.Stripped, res.Fallback, elapsed)
	h.logger.InfoContext(ctx, "reply post-processed",
		"mode", res.Mode(),
		"advice", res.Flags.AskedForAdvice,
		"perspective", res.Flags.AskedForPerspective,
		"sentences", res.Sentences,
		"replaced", res.Replaced,
		"stripped", res.Stripped,
		"fallback", res.Fallback,
		"duration_us", elapsed.Microseconds(),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(NewPostprocessResponse(res, req.Verbose)); err != nil {
		h.logger.ErrorContext(ctx, "failed to write response", "error", err)
	}
}
