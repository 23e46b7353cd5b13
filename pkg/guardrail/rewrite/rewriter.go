// Package rewrite replaces policy-violating sentences with non-directive
// reflections and strips banned phrases from the result.
//
// Replacement sentences are built from the lexicon's reflection starters and
// rewrite closers. A counter local to each call selects the pair, so several
// violations in one reply do not all read identically and identical input
// always produces identical output.
package rewrite

import (
	"strings"

	"anchor-hq/anchor/pkg/guardrail/detect"
	"anchor-hq/anchor/pkg/guardrail/lexicon"
)

// Decision is the per-sentence rewrite outcome.
type Decision int

const (
	// Keep passes the sentence through unchanged.
	Keep Decision = iota
	// Replace substitutes a reflection for the sentence.
	Replace
)

// String returns the decision name.
func (d Decision) String() string {
	if d == Replace {
		return "replace"
	}
	return "keep"
}

// Outcome is the detailed result of a rewrite.
type Outcome struct {
	// Text is the final policy-compliant text.
	Text string

	// Decisions holds one entry per input sentence, in order. It is nil when
	// advice was requested and no per-sentence pass ran.
	Decisions []Decision

	// Replaced is the number of sentences replaced.
	Replaced int

	// Stripped is the number of banned-phrase occurrences removed by the
	// final strip.
	Stripped int

	// Fallback is true when the rewritten text came out empty and the
	// original text was returned instead.
	Fallback bool
}

// Rewriter applies the rewrite algorithm. It holds only read-only state and
// is safe for concurrent use.
type Rewriter struct {
	lex      *lexicon.Lexicon
	detector *detect.Detector
	stripper *Stripper
}

// New creates a rewriter backed by lex. A nil lex uses the default lexicon.
func New(lex *lexicon.Lexicon) *Rewriter {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Rewriter{
		lex:      lex,
		detector: detect.New(lex),
		stripper: NewStripper(lex.BannedPhrases()),
	}
}

// Rewrite produces the final text for sentences given the intent flags.
func (r *Rewriter) Rewrite(sentences []string, advice, perspective bool) string {
	return r.RewriteDetailed(sentences, advice, perspective).Text
}

// RewriteDetailed is like Rewrite and reports per-sentence decisions.
//
// When advice is true no sentence is rewritten and only banned phrases are
// stripped. Otherwise each sentence that contains an action step (when
// perspective is true) or is a strict violation (when it is false) is
// replaced by "<starter> <closer>", cycling through both lists.
func (r *Rewriter) RewriteDetailed(sentences []string, advice, perspective bool) Outcome {
	original := strings.TrimSpace(strings.Join(sentences, " "))
	out := Outcome{}

	joined := original
	if !advice {
		parts := make([]string, 0, len(sentences))
		out.Decisions = make([]Decision, 0, len(sentences))
		for _, sentence := range sentences {
			if r.shouldRewrite(sentence, perspective) {
				parts = append(parts, r.replacement(out.Replaced))
				out.Decisions = append(out.Decisions, Replace)
				out.Replaced++
				continue
			}
			parts = append(parts, sentence)
			out.Decisions = append(out.Decisions, Keep)
		}
		joined = strings.TrimSpace(collapseWhitespace(strings.Join(parts, " ")))
	}

	out.Text, out.Stripped = r.stripper.StripCount(joined)
	if out.Text == "" && original != "" {
		out.Text = original
		out.Fallback = true
	}
	return out
}

// StripBanned removes every banned literal phrase from text.
func (r *Rewriter) StripBanned(text string) string {
	return r.stripper.Strip(text)
}

func (r *Rewriter) shouldRewrite(sentence string, perspective bool) bool {
	if perspective {
		return r.detector.ContainsActionStep(sentence)
	}
	return r.detector.IsViolating(sentence, detect.Strict)
}

func (r *Rewriter) replacement(i int) string {
	return r.lex.Starter(i) + " " + r.lex.Closer(i)
}
