// Package telemetry bundles the service's observability: structured logging
// with conversation redaction, Prometheus metrics, OpenTelemetry tracing and
// health probes.
//
//	tel, err := telemetry.New(cfg.Telemetry, telemetry.BuildInfo{Version: version}, os.Stderr)
//	if err != nil {
//		return err
//	}
//	defer tel.Shutdown(context.Background())
//
//	tel.Logger().Info("reply post-processed", "mode", res.Mode())
//	tel.Metrics().RecordReply(res.Mode(), res.Replaced, res.Stripped, res.Fallback, d)
//
// # Privacy
//
// Reply and user-message text never leaves the process through telemetry.
// Logs replace it with a byte count, metrics carry only counts and modes, and
// spans carry the same counts as attributes.
package telemetry
