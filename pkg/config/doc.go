// Package config provides configuration management for the Anchor service
// and CLI.
//
// Configuration is loaded from a YAML file, completed with defaults and
// overridden by environment variables before it is validated.
//
//	cfg, err := config.LoadConfigWithEnvOverrides("anchor.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention ANCHOR_SECTION_FIELD:
//
//   - ANCHOR_SERVER_LISTEN_ADDRESS overrides server.listen_address
//   - ANCHOR_GUARDRAIL_LEXICON_FILE overrides guardrail.lexicon_file
//   - ANCHOR_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// List values such as ANCHOR_GUARDRAIL_EXTRA_BANNED_PHRASES are
// comma-separated.
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from the YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Example Configuration
//
//	server:
//	  listen_address: "127.0.0.1:8080"
//	  max_body_bytes: 1048576
//
//	guardrail:
//	  lexicon_file: "./lexicon.yaml"
//	  extra_banned_phrases:
//	    - "look on the bright side"
//
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "json"
//	  metrics:
//	    enabled: true
package config
