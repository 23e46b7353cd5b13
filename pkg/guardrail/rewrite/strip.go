package rewrite

import (
	"regexp"
	"strings"
)

// whitespaceRun matches runs of two or more whitespace characters.
var whitespaceRun = regexp.MustCompile(`[\s\p{Zs}]{2,}`)

// Stripper removes banned literal phrases from text.
type Stripper struct {
	phrases []*regexp.Regexp
}

// NewStripper compiles a case-insensitive, regex-escaped matcher for each phrase.
func NewStripper(phrases []string) *Stripper {
	s := &Stripper{phrases: make([]*regexp.Regexp, 0, len(phrases))}
	for _, p := range phrases {
		if p == "" {
			continue
		}
		s.phrases = append(s.phrases, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(p)))
	}
	return s
}

// Strip removes every occurrence of every banned phrase, collapses
// whitespace runs to a single space and trims the result. Passes repeat until
// the text stops changing, so a removal that joins the halves of another
// occurrence is caught and Strip(Strip(x)) == Strip(x).
func (s *Stripper) Strip(text string) string {
	out, _ := s.StripCount(text)
	return out
}

// StripCount is like Strip and also returns the number of phrase
// occurrences removed.
func (s *Stripper) StripCount(text string) (string, int) {
	removed := 0
	for {
		next := text
		for _, re := range s.phrases {
			removed += len(re.FindAllStringIndex(next, -1))
			next = re.ReplaceAllString(next, "")
			next = collapseWhitespace(next)
		}
		next = strings.TrimSpace(next)
		if next == text {
			return next, removed
		}
		text = next
	}
}

func collapseWhitespace(s string) string {
	return whitespaceRun.ReplaceAllString(s, " ")
}
