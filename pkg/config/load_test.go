package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "anchor.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `
server:
  listen_address: "0.0.0.0:9090"
  read_timeout: "5s"
  max_body_bytes: 4096

guardrail:
  extra_banned_phrases:
    - "look on the bright side"

telemetry:
  logging:
    level: "debug"
    format: "text"
  tracing:
    enabled: true
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.ListenAddress != "0.0.0.0:9090" {
		t.Errorf("expected listen address %q, got %q", "0.0.0.0:9090", cfg.Server.ListenAddress)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("expected read timeout %v, got %v", 5*time.Second, cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != DefaultWriteTimeout {
		t.Errorf("expected default write timeout, got %v", cfg.Server.WriteTimeout)
	}
	if cfg.Server.MaxBodyBytes != 4096 {
		t.Errorf("expected max body bytes 4096, got %d", cfg.Server.MaxBodyBytes)
	}
	if len(cfg.Guardrail.ExtraBannedPhrases) != 1 || cfg.Guardrail.ExtraBannedPhrases[0] != "look on the bright side" {
		t.Errorf("unexpected extra phrases %v", cfg.Guardrail.ExtraBannedPhrases)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("expected logging level %q, got %q", "debug", cfg.Telemetry.Logging.Level)
	}
	if !cfg.Telemetry.Metrics.Enabled {
		t.Error("metrics should stay enabled when the file omits the field")
	}
	if !cfg.Telemetry.Tracing.Enabled {
		t.Error("tracing should be enabled from file")
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "malformed yaml",
			content: "server: [unclosed",
			wantErr: "failed to parse",
		},
		{
			name:    "invalid value",
			content: "telemetry:\n  logging:\n    level: loud\n",
			wantErr: "telemetry.logging.level",
		},
		{
			name:    "metrics explicitly disabled is valid",
			content: "telemetry:\n  metrics:\n    enabled: false\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "server:\n  listen_address: \"127.0.0.1:7000\"\n")

	t.Setenv("ANCHOR_SERVER_LISTEN_ADDRESS", "0.0.0.0:8181")
	t.Setenv("ANCHOR_SERVER_WRITE_TIMEOUT", "3s")
	t.Setenv("ANCHOR_SERVER_MAX_BODY_BYTES", "512")
	t.Setenv("ANCHOR_GUARDRAIL_EXTRA_BANNED_PHRASES", "cheer up, , look on the bright side")
	t.Setenv("ANCHOR_TELEMETRY_LOGGING_FORMAT", "text")
	t.Setenv("ANCHOR_TELEMETRY_METRICS_ENABLED", "false")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.ListenAddress != "0.0.0.0:8181" {
		t.Errorf("expected env listen address, got %q", cfg.Server.ListenAddress)
	}
	if cfg.Server.WriteTimeout != 3*time.Second {
		t.Errorf("expected write timeout 3s, got %v", cfg.Server.WriteTimeout)
	}
	if cfg.Server.MaxBodyBytes != 512 {
		t.Errorf("expected max body bytes 512, got %d", cfg.Server.MaxBodyBytes)
	}
	want := []string{"cheer up", "look on the bright side"}
	if len(cfg.Guardrail.ExtraBannedPhrases) != 2 || cfg.Guardrail.ExtraBannedPhrases[0] != want[0] || cfg.Guardrail.ExtraBannedPhrases[1] != want[1] {
		t.Errorf("expected extra phrases %v, got %v", want, cfg.Guardrail.ExtraBannedPhrases)
	}
	if cfg.Telemetry.Logging.Format != "text" {
		t.Errorf("expected text format, got %q", cfg.Telemetry.Logging.Format)
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("expected metrics disabled by env")
	}
}

func TestLoadConfigWithEnvOverrides_InvalidValues(t *testing.T) {
	path := writeConfig(t, "")

	t.Setenv("ANCHOR_SERVER_READ_TIMEOUT", "soon")
	t.Setenv("ANCHOR_TELEMETRY_TRACING_ENABLED", "maybe")

	_, err := LoadConfigWithEnvOverrides(path)

	var validationErr ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(validationErr.Errors) != 2 {
		t.Errorf("expected 2 errors, got %v", validationErr.Errors)
	}
}

func TestLoadOrDefault(t *testing.T) {
	t.Run("missing file uses defaults", func(t *testing.T) {
		t.Setenv("ANCHOR_TELEMETRY_LOGGING_LEVEL", "warn")

		cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Server.ListenAddress != DefaultListenAddress {
			t.Errorf("expected default listen address, got %q", cfg.Server.ListenAddress)
		}
		if cfg.Telemetry.Logging.Level != "warn" {
			t.Errorf("expected env override, got %q", cfg.Telemetry.Logging.Level)
		}
	})

	t.Run("invalid file is still an error", func(t *testing.T) {
		if _, err := LoadOrDefault(writeConfig(t, "server: [")); err == nil {
			t.Error("expected parse error")
		}
	})
}
