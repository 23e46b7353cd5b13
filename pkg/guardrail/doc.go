// Package guardrail enforces the "no unsolicited directive advice" policy on
// assistant replies.
//
// Given a complete reply from the upstream model and the user's most recent
// message, the pipeline classifies what the user asked for, splits the reply
// into sentences, replaces violating sentences with non-directive reflections
// and strips banned phrases. It is a pure function of its inputs: no I/O, no
// clock, no randomness, and no state carried between calls.
//
// # Architecture
//
// The pipeline is composed of sub-packages, leaves first:
//
//   - lexicon: static phrase and pattern tables, compiled once
//   - intent: advice / perspective classification of the user message
//   - segment: sentence segmentation
//   - detect: per-sentence violation detection
//   - rewrite: sentence replacement and banned-phrase stripping
//
// # Usage
//
//	reply := guardrail.Process(rawReply, lastUserMessage)
//
// Callers that want counts for metrics or logs use a Pipeline directly:
//
//	p := guardrail.New(lexicon.Default())
//	res := p.Run(rawReply, lastUserMessage)
//	slog.Info("reply post-processed",
//		"mode", res.Mode(),
//		"replaced", res.Replaced,
//		"fallback", res.Fallback)
//
// # Intent modes
//
//   - advice requested: directive language is what the user asked for, so
//     only banned literal phrases are removed
//   - perspective requested: reflective opinions stay, action steps are rewritten
//   - neither: every violating sentence is rewritten
//
// # Concurrency
//
// A Pipeline holds only read-only state. One instance may serve any number
// of goroutines.
package guardrail
