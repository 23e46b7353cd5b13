// Package logging configures log/slog for the Anchor CLI and service.
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//	if err != nil {
//	    return err
//	}
//	slog.SetDefault(logger)
//
// # Conversation content
//
// Replies and user messages are personal. When RedactContent is set (the
// default for FromConfig), string attributes under the keys listed in
// ContentKeys are replaced by their length before they reach the output.
// Debug logs are redacted too; disable redaction explicitly to see text.
//
// # Context fields
//
// WithRequestID stores a request ID in a context. Loggers returned by
// New emit it as "request_id" on every *Context call.
package logging
