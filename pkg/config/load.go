package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable override.
const EnvPrefix = "ANCHOR_"

// LoadConfig loads configuration from a YAML file at path, applies defaults
// and validates the result. Environment variables are not consulted.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and
// applies ANCHOR_SECTION_FIELD environment overrides on top of it.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault behaves like LoadConfigWithEnvOverrides, except that a
// missing file yields the default configuration with environment overrides
// applied. Any other read or parse error is returned.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := LoadConfigWithEnvOverrides(path)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg = DefaultConfig()
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to cfg.
// Malformed durations, integers and booleans are reported as field errors.
func applyEnvOverrides(cfg *Config) error {
	var errs []FieldError

	str := func(name string, dst *string) {
		if val := os.Getenv(EnvPrefix + name); val != "" {
			*dst = val
		}
	}
	dur := func(name, field string, dst *time.Duration) {
		val := os.Getenv(EnvPrefix + name)
		if val == "" {
			return
		}
		d, err := time.ParseDuration(val)
		if err != nil {
			errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf("invalid duration %q from %s%s", val, EnvPrefix, name)})
			return
		}
		*dst = d
	}
	boolean := func(name, field string, dst *bool) {
		val := os.Getenv(EnvPrefix + name)
		if val == "" {
			return
		}
		b, err := strconv.ParseBool(val)
		if err != nil {
			errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf("invalid boolean %q from %s%s", val, EnvPrefix, name)})
			return
		}
		*dst = b
	}

	// Server overrides
	str("SERVER_LISTEN_ADDRESS", &cfg.Server.ListenAddress)
	dur("SERVER_READ_TIMEOUT", "server.read_timeout", &cfg.Server.ReadTimeout)
	dur("SERVER_WRITE_TIMEOUT", "server.write_timeout", &cfg.Server.WriteTimeout)
	dur("SERVER_IDLE_TIMEOUT", "server.idle_timeout", &cfg.Server.IdleTimeout)
	dur("SERVER_SHUTDOWN_TIMEOUT", "server.shutdown_timeout", &cfg.Server.ShutdownTimeout)
	if val := os.Getenv(EnvPrefix + "SERVER_MAX_BODY_BYTES"); val != "" {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Server.MaxBodyBytes = n
		} else {
			errs = append(errs, FieldError{Field: "server.max_body_bytes", Message: fmt.Sprintf("invalid integer %q", val)})
		}
	}

	// Guardrail overrides
	str("GUARDRAIL_LEXICON_FILE", &cfg.Guardrail.LexiconFile)
	if val := os.Getenv(EnvPrefix + "GUARDRAIL_EXTRA_BANNED_PHRASES"); val != "" {
		cfg.Guardrail.ExtraBannedPhrases = splitList(val)
	}

	// Telemetry overrides
	str("TELEMETRY_LOGGING_LEVEL", &cfg.Telemetry.Logging.Level)
	str("TELEMETRY_LOGGING_FORMAT", &cfg.Telemetry.Logging.Format)
	boolean("TELEMETRY_METRICS_ENABLED", "telemetry.metrics.enabled", &cfg.Telemetry.Metrics.Enabled)
	str("TELEMETRY_METRICS_PATH", &cfg.Telemetry.Metrics.Path)
	boolean("TELEMETRY_TRACING_ENABLED", "telemetry.tracing.enabled", &cfg.Telemetry.Tracing.Enabled)
	str("TELEMETRY_TRACING_SERVICE_NAME", &cfg.Telemetry.Tracing.ServiceName)
	str("TELEMETRY_TRACING_SAMPLER", &cfg.Telemetry.Tracing.Sampler)
	if val := os.Getenv(EnvPrefix + "TELEMETRY_TRACING_SAMPLE_RATIO"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Telemetry.Tracing.SampleRatio = f
		} else {
			errs = append(errs, FieldError{Field: "telemetry.tracing.sample_ratio", Message: fmt.Sprintf("invalid number %q", val)})
		}
	}
	str("TELEMETRY_TRACING_EXPORTER", &cfg.Telemetry.Tracing.Exporter)
	str("TELEMETRY_TRACING_ENDPOINT", &cfg.Telemetry.Tracing.Endpoint)
	boolean("TELEMETRY_TRACING_INSECURE", "telemetry.tracing.insecure", &cfg.Telemetry.Tracing.Insecure)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func splitList(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
