package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"anchor-hq/anchor/pkg/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:   "valid JSON config",
			config: Config{Level: "info", Format: "json"},
		},
		{
			name:   "valid text config",
			config: Config{Level: "debug", Format: "text", RedactContent: true},
		},
		{
			name:   "empty values use defaults",
			config: Config{},
		},
		{
			name:    "invalid log level",
			config:  Config{Level: "invalid", Format: "json"},
			wantErr: true,
		},
		{
			name:    "invalid format",
			config:  Config{Level: "info", Format: "console"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.config.Writer = &bytes.Buffer{}
			logger, err := New(tt.config)

			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && logger == nil {
				t.Error("New() returned nil logger")
			}
		})
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "warn", Format: "text", Writer: buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn message missing: %s", out)
	}
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("failed to decode log line %q: %v", buf.String(), err)
	}
	return entry
}

func TestNew_RedactsContent(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "debug", Format: "json", RedactContent: true, Writer: buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Debug("reply post-processed",
		"reply", "You should rest.",
		"mode", "strict",
		slog.Group("request", "last_user_message", "I'm tired"),
	)

	entry := decodeLine(t, buf)
	if entry["reply"] != "[redacted 16 bytes]" {
		t.Errorf("reply = %v, want redacted marker", entry["reply"])
	}
	if entry["mode"] != "strict" {
		t.Errorf("mode = %v, want strict", entry["mode"])
	}
	group, ok := entry["request"].(map[string]any)
	if !ok {
		t.Fatalf("request group missing: %v", entry)
	}
	if group["last_user_message"] != "[redacted 9 bytes]" {
		t.Errorf("grouped content not redacted: %v", group["last_user_message"])
	}
}

func TestNew_RedactsWithAttrs(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Format: "json", RedactContent: true, Writer: buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.With("content", "secret").Info("hello")

	if strings.Contains(buf.String(), "secret") {
		t.Errorf("content leaked through With: %s", buf.String())
	}
}

func TestNew_NoRedaction(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Format: "json", Writer: buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Info("hello", "reply", "visible")

	if entry := decodeLine(t, buf); entry["reply"] != "visible" {
		t.Errorf("reply = %v, want visible", entry["reply"])
	}
}

func TestNew_RequestIDFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Format: "json", Writer: buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx := WithRequestID(context.Background(), "req-123")
	logger.InfoContext(ctx, "request completed")

	if entry := decodeLine(t, buf); entry["request_id"] != "req-123" {
		t.Errorf("request_id = %v, want req-123", entry["request_id"])
	}
}

func TestGetRequestID(t *testing.T) {
	if got := GetRequestID(context.Background()); got != "" {
		t.Errorf("GetRequestID(empty) = %q", got)
	}
	if got := GetRequestID(WithRequestID(context.Background(), "abc")); got != "abc" {
		t.Errorf("GetRequestID() = %q, want abc", got)
	}
}

func TestFromConfig(t *testing.T) {
	cfg := FromConfig(config.LoggingConfig{Level: "debug", Format: "text", AddSource: true})

	if cfg.Level != "debug" || cfg.Format != "text" || !cfg.AddSource {
		t.Errorf("FromConfig() = %+v", cfg)
	}
	if !cfg.RedactContent {
		t.Error("FromConfig() should always redact content")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"trace", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseLevel(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
