package config

import "time"

// Config is the root configuration structure.
type Config struct {
	// Server contains HTTP service configuration.
	Server ServerConfig `yaml:"server"`

	// Guardrail contains the lexicon sources used by the post-processing
	// pipeline.
	Guardrail GuardrailConfig `yaml:"guardrail"`

	// Telemetry contains logging, metrics and tracing configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains configuration for the HTTP service.
type ServerConfig struct {
	// ListenAddress is the address and port to listen on.
	// Default: "127.0.0.1:8080"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request.
	// Default: 15s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response.
	// Default: 15s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum time to wait for the next request on a
	// keep-alive connection.
	// Default: 60s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 10s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxBodyBytes caps the request body size.
	// Default: 1MB
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

// GuardrailConfig selects the lexicon the pipeline runs with.
type GuardrailConfig struct {
	// LexiconFile is an optional YAML file whose tables replace the built-in
	// ones. Tables it does not mention keep their defaults.
	LexiconFile string `yaml:"lexicon_file"`

	// ExtraBannedPhrases are appended to the banned phrase table.
	ExtraBannedPhrases []string `yaml:"extra_banned_phrases"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text"
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether the Prometheus endpoint is served.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path for the metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "anchor"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "guardrail"
	Subsystem string `yaml:"subsystem"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether spans are recorded and exported.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// ServiceName is the service name in traces.
	// Default: "anchor"
	ServiceName string `yaml:"service_name"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "ratio"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Only used when Sampler is "ratio".
	// Default: 0.1
	SampleRatio float64 `yaml:"sample_ratio"`

	// Exporter selects where spans go.
	// Options: "otlp", "none"
	// Default: "otlp"
	Exporter string `yaml:"exporter"`

	// Endpoint is the OTLP gRPC collector endpoint.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// Insecure disables TLS for the OTLP connection.
	// Default: false
	Insecure bool `yaml:"insecure"`

	// Timeout bounds each OTLP export.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}
