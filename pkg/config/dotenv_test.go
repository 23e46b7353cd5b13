package config

import (
	"os"
	"path/filepath"
	"testing"
)

// unsetForTest clears key for the duration of the test and restores it after.
func unsetForTest(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("unsetenv %s: %v", key, err)
	}
}

func TestLoadEnvFile(t *testing.T) {
	unsetForTest(t, "ANCHOR_SERVER_LISTEN_ADDRESS")
	t.Setenv("ANCHOR_TELEMETRY_LOGGING_LEVEL", "warn")

	path := filepath.Join(t.TempDir(), ".env")
	content := "ANCHOR_SERVER_LISTEN_ADDRESS=0.0.0.0:9999\nANCHOR_TELEMETRY_LOGGING_LEVEL=debug\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := LoadEnvFile(path, true); err != nil {
		t.Fatalf("LoadEnvFile() error = %v", err)
	}

	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.Server.ListenAddress != "0.0.0.0:9999" {
		t.Errorf("ListenAddress = %q, want value from env file", cfg.Server.ListenAddress)
	}
	if cfg.Telemetry.Logging.Level != "warn" {
		t.Errorf("Level = %q, existing environment should win", cfg.Telemetry.Logging.Level)
	}
}

func TestLoadEnvFile_Missing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), ".env")

	if err := LoadEnvFile(missing, false); err != nil {
		t.Errorf("optional missing file: error = %v", err)
	}
	if err := LoadEnvFile(missing, true); err == nil {
		t.Error("required missing file should fail")
	}
}
