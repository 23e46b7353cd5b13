// Package segment splits reply text into sentence-like units.
package segment

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Segment splits text on sentence-final punctuation ('.', '!' or '?')
// followed by whitespace. Punctuation stays attached to the sentence it ends
// and a trailing fragment without terminal punctuation is kept as its own
// sentence. Every returned sentence is trimmed and non-empty; empty or
// whitespace-only input yields nil.
//
// Abbreviations and decimals are not special-cased: "3. 5" splits, "3.5" does not.
func Segment(text string) []string {
	var sentences []string

	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		next := i + size
		if isTerminal(r) && next < len(text) {
			if nr, _ := utf8.DecodeRuneInString(text[next:]); unicode.IsSpace(nr) {
				sentences = appendTrimmed(sentences, text[start:next])
				start = next
			}
		}
		i = next
	}
	return appendTrimmed(sentences, text[start:])
}

// Join reassembles sentences with single spaces.
func Join(sentences []string) string {
	return strings.Join(sentences, " ")
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func appendTrimmed(sentences []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}
