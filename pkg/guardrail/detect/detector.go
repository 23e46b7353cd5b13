// Package detect decides whether a sentence violates the no-unsolicited-advice
// policy.
//
// Detection unions three lexicon tables: banned literal phrases, banned
// patterns and advice-like constructions. The separate action-verb
// diagnostic (ContainsActionVerbs) audits finished output and is deliberately
// kept distinct from the detection predicate.
package detect

import (
	"anchor-hq/anchor/pkg/guardrail/lexicon"
)

// Mode selects how a sentence is judged.
type Mode int

const (
	// Strict is used when the user asked for neither advice nor perspective.
	Strict Mode = iota

	// PerspectiveAllowed is used when the user asked for perspective but not
	// advice. The violation test is identical; the rewriter additionally
	// keeps purely reflective sentences.
	PerspectiveAllowed
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Strict:
		return "strict"
	case PerspectiveAllowed:
		return "perspective_allowed"
	default:
		return "unknown"
	}
}

// Kind names the lexicon table that flagged a sentence.
type Kind string

const (
	KindBannedPhrase  Kind = "banned_phrase"
	KindBannedPattern Kind = "banned_pattern"
	KindAdviceLike    Kind = "advice_like"
)

// Finding explains why a sentence was flagged.
type Finding struct {
	// Kind is the table that matched.
	Kind Kind `json:"kind"`

	// Match is the phrase or pattern source that matched.
	Match string `json:"match"`
}

// Detector applies the lexicon's violation tables to sentences.
// It is stateless and safe for concurrent use.
type Detector struct {
	lex *lexicon.Lexicon
}

// New creates a detector backed by lex. A nil lex uses the default lexicon.
func New(lex *lexicon.Lexicon) *Detector {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Detector{lex: lex}
}

// IsViolating reports whether sentence contains a banned phrase, a banned
// pattern or an advice-like construction. The result does not depend on mode.
func (d *Detector) IsViolating(sentence string, mode Mode) bool {
	_, ok := d.Explain(sentence)
	return ok
}

// ContainsActionStep reports whether sentence contains an action step. Action
// steps are never acceptable without an advice request, so this is the same
// predicate as IsViolating.
func (d *Detector) ContainsActionStep(sentence string) bool {
	return d.IsViolating(sentence, PerspectiveAllowed)
}

// Explain returns the first finding for sentence, checking banned phrases,
// then banned patterns, then advice-like constructions.
func (d *Detector) Explain(sentence string) (Finding, bool) {
	if phrase, ok := d.lex.MatchBannedPhrase(sentence); ok {
		return Finding{Kind: KindBannedPhrase, Match: phrase}, true
	}
	if src, ok := d.lex.MatchBannedPattern(sentence); ok {
		return Finding{Kind: KindBannedPattern, Match: src}, true
	}
	if src, ok := d.lex.MatchAdviceLike(sentence); ok {
		return Finding{Kind: KindAdviceLike, Match: src}, true
	}
	return Finding{}, false
}

// IsReflectiveOnly reports whether sentence is purely reflective: it does not
// violate and begins with a reflection starter.
func (d *Detector) IsReflectiveOnly(sentence string) bool {
	if d.ContainsActionStep(sentence) {
		return false
	}
	return d.lex.StartsWithReflection(sentence)
}

// ContainsActionVerbs reports whether text contains any action-verb or
// directive phrasing from the diagnostic table.
func (d *Detector) ContainsActionVerbs(text string) bool {
	return d.lex.MatchesActionVerb(text)
}
