// Package health serves liveness, readiness and version probes.
//
//   - /health answers 200 while the process is up
//   - /ready runs the registered checks and answers 503 if any fails
//   - /version reports build information
//
// The server registers a guardrail self-check so a misconfigured lexicon
// takes the instance out of rotation instead of passing advice through.
package health
