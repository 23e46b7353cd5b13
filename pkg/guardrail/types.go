package guardrail

import (
	"anchor-hq/anchor/pkg/guardrail/intent"
)

// Mode labels used by Result.Mode.
const (
	ModeAdvice      = "advice"
	ModePerspective = "perspective"
	ModeStrict      = "strict"
	ModePassthrough = "passthrough"
)

// Options are the intent flags that drive post-processing.
type Options struct {
	// UserAskedForAdvice disables per-sentence rewriting.
	UserAskedForAdvice bool

	// UserAskedForPerspective keeps reflective opinions and rewrites only
	// action steps.
	UserAskedForPerspective bool
}

// Result is the detailed outcome of one pipeline run.
type Result struct {
	// Text is the policy-compliant reply.
	Text string

	// Flags is the intent derived from the user message.
	Flags intent.Flags

	// Passthrough is true when the reply was empty or whitespace and was
	// returned unchanged.
	Passthrough bool

	// Sentences is the number of sentences the reply was split into.
	Sentences int

	// Replaced is the number of sentences replaced by reflections.
	Replaced int

	// Stripped is the number of banned-phrase occurrences removed.
	Stripped int

	// Fallback is true when rewriting produced empty text and the trimmed
	// original was returned.
	Fallback bool
}

// Mode returns the intent mode the reply was processed under.
func (r Result) Mode() string {
	switch {
	case r.Passthrough:
		return ModePassthrough
	case r.Flags.AskedForAdvice:
		return ModeAdvice
	case r.Flags.AskedForPerspective:
		return ModePerspective
	default:
		return ModeStrict
	}
}

// Changed reports whether the returned text differs in content from the
// input, ignoring whitespace normalization.
func (r Result) Changed() bool {
	return r.Replaced > 0 || r.Stripped > 0
}

// Message is one turn of a chat transcript.
type Message struct {
	// Role is "user" or "assistant".
	Role string `json:"role"`

	// Content is the message text.
	Content string `json:"content"`
}

// Chat roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
