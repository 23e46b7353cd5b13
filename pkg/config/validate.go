package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "server.listen_address").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// collecting every rule that fails. It returns nil if the configuration is
// valid.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateServer(&cfg.Server)...)
	errs = append(errs, validateGuardrail(&cfg.Guardrail)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateServer(cfg *ServerConfig) []FieldError {
	var errs []FieldError

	if cfg.ListenAddress == "" {
		errs = append(errs, FieldError{
			Field:   "server.listen_address",
			Message: "listen address is required",
		})
	}

	timeouts := []struct {
		field string
		value time.Duration
	}{
		{"server.read_timeout", cfg.ReadTimeout},
		{"server.write_timeout", cfg.WriteTimeout},
		{"server.idle_timeout", cfg.IdleTimeout},
		{"server.shutdown_timeout", cfg.ShutdownTimeout},
	}
	for _, to := range timeouts {
		if to.value < 0 {
			errs = append(errs, FieldError{
				Field:   to.field,
				Message: "timeout must be positive",
			})
		}
	}

	if cfg.MaxBodyBytes <= 0 {
		errs = append(errs, FieldError{
			Field:   "server.max_body_bytes",
			Message: "max body bytes must be positive",
		})
	}
	if cfg.MaxBodyBytes > 64<<20 {
		errs = append(errs, FieldError{
			Field:   "server.max_body_bytes",
			Message: "max body bytes exceeds reasonable limit (64MB)",
		})
	}

	return errs
}

func validateGuardrail(cfg *GuardrailConfig) []FieldError {
	var errs []FieldError

	if cfg.LexiconFile != "" {
		if info, err := os.Stat(cfg.LexiconFile); err != nil {
			errs = append(errs, FieldError{
				Field:   "guardrail.lexicon_file",
				Message: fmt.Sprintf("cannot access lexicon file: %v", err),
			})
		} else if info.IsDir() {
			errs = append(errs, FieldError{
				Field:   "guardrail.lexicon_file",
				Message: "lexicon file is a directory",
			})
		}
	}

	for i, phrase := range cfg.ExtraBannedPhrases {
		if strings.TrimSpace(phrase) == "" {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("guardrail.extra_banned_phrases[%d]", i),
				Message: "phrase must not be empty",
			})
		}
	}

	return errs
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if cfg.Logging.Level == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: "logging level is required",
		})
	} else if !validLevels[cfg.Logging.Level] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("invalid logging level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.Logging.Level),
		})
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[cfg.Logging.Format] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid logging format %q: must be 'json' or 'text'", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Enabled {
		if !strings.HasPrefix(cfg.Metrics.Path, "/") {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.path",
				Message: "metrics path must start with '/'",
			})
		}
		if cfg.Metrics.Namespace == "" {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.namespace",
				Message: "metrics namespace is required when metrics are enabled",
			})
		}
	}

	if cfg.Tracing.Enabled {
		errs = append(errs, validateTracing(&cfg.Tracing)...)
	}

	return errs
}

func validateTracing(cfg *TracingConfig) []FieldError {
	var errs []FieldError

	if cfg.ServiceName == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.tracing.service_name",
			Message: "service name is required when tracing is enabled",
		})
	}

	validSamplers := map[string]bool{"always": true, "never": true, "ratio": true}
	if !validSamplers[cfg.Sampler] {
		errs = append(errs, FieldError{
			Field:   "telemetry.tracing.sampler",
			Message: fmt.Sprintf("invalid sampler %q: must be 'always', 'never', or 'ratio'", cfg.Sampler),
		})
	}
	if cfg.SampleRatio < 0 || cfg.SampleRatio > 1 {
		errs = append(errs, FieldError{
			Field:   "telemetry.tracing.sample_ratio",
			Message: "sample ratio must be between 0.0 and 1.0",
		})
	}

	switch cfg.Exporter {
	case "otlp":
		if cfg.Endpoint == "" {
			errs = append(errs, FieldError{
				Field:   "telemetry.tracing.endpoint",
				Message: "endpoint is required for the otlp exporter",
			})
		}
	case "none":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.tracing.exporter",
			Message: fmt.Sprintf("invalid exporter %q: must be 'otlp' or 'none'", cfg.Exporter),
		})
	}

	if cfg.Timeout < 0 {
		errs = append(errs, FieldError{
			Field:   "telemetry.tracing.timeout",
			Message: "timeout must be positive",
		})
	}

	return errs
}
