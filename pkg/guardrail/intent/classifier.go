// Package intent classifies what the user asked for in their last message.
//
// Two independent signals are derived: whether the user explicitly asked for
// advice, and whether they asked for the assistant's perspective or opinion.
// Both can be true at once. English and Chinese phrasings are recognized.
package intent

import (
	"strings"

	"anchor-hq/anchor/pkg/guardrail/lexicon"
)

// Flags is the intent derived from a single user message.
type Flags struct {
	// AskedForAdvice is true when the user explicitly requested advice.
	AskedForAdvice bool `json:"asked_for_advice"`

	// AskedForPerspective is true when the user asked for an opinion.
	AskedForPerspective bool `json:"asked_for_perspective"`
}

// Classifier maps user messages to intent flags using a lexicon.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	lex *lexicon.Lexicon
}

// NewClassifier creates a classifier backed by lex. A nil lex uses the
// default lexicon.
func NewClassifier(lex *lexicon.Lexicon) *Classifier {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Classifier{lex: lex}
}

// Classify derives both intent flags from msg.
func (c *Classifier) Classify(msg string) Flags {
	return Flags{
		AskedForAdvice:      c.AskedForAdvice(msg),
		AskedForPerspective: c.AskedForPerspective(msg),
	}
}

// AskedForAdvice reports whether msg explicitly asks for advice.
func (c *Classifier) AskedForAdvice(msg string) bool {
	_, ok := c.AdviceLanguage(msg)
	return ok
}

// AdviceLanguage returns the language of the advice-request pattern that
// matched msg, if any.
func (c *Classifier) AdviceLanguage(msg string) (lexicon.Language, bool) {
	trimmed := strings.TrimSpace(msg)
	if trimmed == "" {
		return "", false
	}
	return c.lex.MatchAdviceRequest(trimmed)
}

// AskedForPerspective reports whether msg asks for the assistant's
// perspective or opinion.
func (c *Classifier) AskedForPerspective(msg string) bool {
	trimmed := strings.TrimSpace(msg)
	if trimmed == "" {
		return false
	}
	return c.lex.MatchesPerspectiveRequest(trimmed)
}

var defaultClassifier = NewClassifier(nil)

// Classify derives intent flags from msg using the default lexicon.
func Classify(msg string) Flags {
	return defaultClassifier.Classify(msg)
}
