package logging

import (
	"context"
	"log/slog"
	"strconv"
)

// ContentKeys are the attribute keys that carry conversation text.
var ContentKeys = []string{"reply", "content", "last_user_message", "text"}

// redactHandler replaces string values of sensitive keys with a length
// marker. Keys inside groups are matched by their own name.
type redactHandler struct {
	next slog.Handler
	keys map[string]bool
}

func newRedactHandler(next slog.Handler, keys ...string) *redactHandler {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return &redactHandler{next: next, keys: set}
}

func (h *redactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *redactHandler) Handle(ctx context.Context, r slog.Record) error {
	out := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.redact(a))
		return true
	})
	return h.next.Handle(ctx, out)
}

func (h *redactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redacted[i] = h.redact(a)
	}
	return &redactHandler{next: h.next.WithAttrs(redacted), keys: h.keys}
}

func (h *redactHandler) WithGroup(name string) slog.Handler {
	return &redactHandler{next: h.next.WithGroup(name), keys: h.keys}
}

func (h *redactHandler) redact(a slog.Attr) slog.Attr {
	v := a.Value.Resolve()

	switch v.Kind() {
	case slog.KindGroup:
		group := v.Group()
		out := make([]any, len(group))
		for i, ga := range group {
			out[i] = h.redact(ga)
		}
		return slog.Group(a.Key, out...)
	case slog.KindString:
		if h.keys[a.Key] {
			return slog.String(a.Key, redactedMarker(v.String()))
		}
	}
	return slog.Attr{Key: a.Key, Value: v}
}

func redactedMarker(s string) string {
	return "[redacted " + strconv.Itoa(len(s)) + " bytes]"
}
