package lexicon

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Language tags an advice-request pattern with the language it recognizes.
type Language string

const (
	// English marks patterns written for English (Latin script) messages.
	English Language = "en"
	// Chinese marks patterns written for Chinese messages.
	Chinese Language = "zh"
)

// Table names used in CompileError and lint output.
const (
	TableBannedPhrases      = "banned_phrases"
	TableBannedPatterns     = "banned_patterns"
	TableAdviceLike         = "advice_like_patterns"
	TableActionVerbs        = "action_verb_patterns"
	TableAdviceRequests     = "advice_request_patterns"
	TablePerspectiveRequest = "perspective_request_patterns"
	TableReflectionStarters = "reflection_starters"
	TableRewriteClosers     = "rewrite_closers"
)

// Tables is the uncompiled, serializable form of a Lexicon.
// Patterns use RE2 syntax and are always matched case-insensitively.
type Tables struct {
	// BannedPhrases are literal phrases removed from every reply.
	BannedPhrases []string `yaml:"banned_phrases"`

	// BannedPatterns flag directive language in a sentence.
	BannedPatterns []string `yaml:"banned_patterns"`

	// AdviceLikePatterns flag imperative suggestion forms. They are unioned
	// with BannedPatterns for violation detection.
	AdviceLikePatterns []string `yaml:"advice_like_patterns"`

	// ActionVerbPatterns are the extra patterns of the action-verb diagnostic.
	// The compiled diagnostic set also includes BannedPatterns and
	// AdviceLikePatterns.
	ActionVerbPatterns []string `yaml:"action_verb_patterns"`

	// AdviceRequestPatterns detect a user explicitly asking for advice.
	AdviceRequestPatterns []RequestPattern `yaml:"advice_request_patterns"`

	// PerspectiveRequestPatterns detect a user asking for an opinion.
	PerspectiveRequestPatterns []string `yaml:"perspective_request_patterns"`

	// ReflectionStarters open every replacement sentence.
	ReflectionStarters []string `yaml:"reflection_starters"`

	// RewriteClosers finish every replacement sentence.
	RewriteClosers []string `yaml:"rewrite_closers"`
}

// RequestPattern is a user-intent pattern tagged by language.
type RequestPattern struct {
	Language Language `yaml:"language"`
	Pattern  string   `yaml:"pattern"`
}

// CompileError reports a table entry that could not be compiled.
type CompileError struct {
	Table string
	Index int
	Err   error
}

func (e *CompileError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("lexicon table %s: %v", e.Table, e.Err)
	}
	return fmt.Sprintf("lexicon table %s[%d]: %v", e.Table, e.Index, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// ErrEmptyTable is wrapped by CompileError when a table has no entries.
var ErrEmptyTable = errors.New("table must not be empty")

// ErrEmptyEntry is wrapped by CompileError when a table entry is blank.
var ErrEmptyEntry = errors.New("entry must not be blank")

type requestMatcher struct {
	language Language
	re       *regexp.Regexp
}

// Lexicon is a compiled, immutable set of guardrail tables.
// All methods are safe for concurrent use.
type Lexicon struct {
	tables Tables

	bannedPhrasesLower []string
	startersLower      []string

	bannedPatterns      []*regexp.Regexp
	adviceLike          []*regexp.Regexp
	actionVerbs         []*regexp.Regexp
	adviceRequests      []requestMatcher
	perspectiveRequests []*regexp.Regexp
}

var defaultLexicon = MustCompile(DefaultTables())

// Default returns the process-wide lexicon built from DefaultTables.
func Default() *Lexicon {
	return defaultLexicon
}

// MustCompile is like Compile but panics on error.
func MustCompile(t Tables) *Lexicon {
	lex, err := Compile(t)
	if err != nil {
		panic(err)
	}
	return lex
}

// Compile validates and compiles t. Every table must be non-empty and every
// entry non-blank.
func Compile(t Tables) (*Lexicon, error) {
	t = t.clone()
	lex := &Lexicon{tables: t}

	if err := checkStrings(TableBannedPhrases, t.BannedPhrases); err != nil {
		return nil, err
	}
	if err := checkStrings(TableReflectionStarters, t.ReflectionStarters); err != nil {
		return nil, err
	}
	if err := checkStrings(TableRewriteClosers, t.RewriteClosers); err != nil {
		return nil, err
	}

	var err error
	if lex.bannedPatterns, err = compileAll(TableBannedPatterns, t.BannedPatterns); err != nil {
		return nil, err
	}
	if lex.adviceLike, err = compileAll(TableAdviceLike, t.AdviceLikePatterns); err != nil {
		return nil, err
	}
	extra, err := compileAll(TableActionVerbs, t.ActionVerbPatterns)
	if err != nil {
		return nil, err
	}
	if lex.perspectiveRequests, err = compileAll(TablePerspectiveRequest, t.PerspectiveRequestPatterns); err != nil {
		return nil, err
	}

	if len(t.AdviceRequestPatterns) == 0 {
		return nil, &CompileError{Table: TableAdviceRequests, Index: -1, Err: ErrEmptyTable}
	}
	lex.adviceRequests = make([]requestMatcher, 0, len(t.AdviceRequestPatterns))
	for i, rp := range t.AdviceRequestPatterns {
		re, err := compilePattern(TableAdviceRequests, i, rp.Pattern)
		if err != nil {
			return nil, err
		}
		switch rp.Language {
		case English, Chinese:
		default:
			return nil, &CompileError{
				Table: TableAdviceRequests,
				Index: i,
				Err:   fmt.Errorf("unsupported language %q", rp.Language),
			}
		}
		lex.adviceRequests = append(lex.adviceRequests, requestMatcher{language: rp.Language, re: re})
	}

	// The action-verb diagnostic covers its own table plus both detection tables.
	lex.actionVerbs = make([]*regexp.Regexp, 0, len(extra)+len(lex.bannedPatterns)+len(lex.adviceLike))
	lex.actionVerbs = append(lex.actionVerbs, extra...)
	lex.actionVerbs = append(lex.actionVerbs, lex.bannedPatterns...)
	lex.actionVerbs = append(lex.actionVerbs, lex.adviceLike...)

	lex.bannedPhrasesLower = lowerAll(t.BannedPhrases)
	lex.startersLower = lowerAll(t.ReflectionStarters)

	return lex, nil
}

// Tables returns a copy of the tables this lexicon was compiled from.
func (l *Lexicon) Tables() Tables {
	return l.tables.clone()
}

// BannedPhrases returns a copy of the banned literal phrases.
func (l *Lexicon) BannedPhrases() []string {
	return append([]string(nil), l.tables.BannedPhrases...)
}

// Starter returns the reflection starter at position i, cycling through the list.
func (l *Lexicon) Starter(i int) string {
	return l.tables.ReflectionStarters[mod(i, len(l.tables.ReflectionStarters))]
}

// Closer returns the rewrite closer at position i, cycling through the list.
func (l *Lexicon) Closer(i int) string {
	return l.tables.RewriteClosers[mod(i, len(l.tables.RewriteClosers))]
}

// ContainsBannedPhrase reports whether s contains any banned literal phrase,
// ignoring case.
func (l *Lexicon) ContainsBannedPhrase(s string) bool {
	_, ok := l.MatchBannedPhrase(s)
	return ok
}

// MatchBannedPhrase returns the first banned phrase contained in s.
func (l *Lexicon) MatchBannedPhrase(s string) (string, bool) {
	lower := strings.ToLower(s)
	for i, phrase := range l.bannedPhrasesLower {
		if strings.Contains(lower, phrase) {
			return l.tables.BannedPhrases[i], true
		}
	}
	return "", false
}

// MatchBannedPattern returns the source of the first banned pattern matching s.
func (l *Lexicon) MatchBannedPattern(s string) (string, bool) {
	return firstMatch(l.bannedPatterns, l.tables.BannedPatterns, s)
}

// MatchAdviceLike returns the source of the first advice-like pattern matching s.
func (l *Lexicon) MatchAdviceLike(s string) (string, bool) {
	return firstMatch(l.adviceLike, l.tables.AdviceLikePatterns, s)
}

// MatchesActionVerb reports whether s matches the action-verb diagnostic set.
func (l *Lexicon) MatchesActionVerb(s string) bool {
	for _, re := range l.actionVerbs {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// MatchAdviceRequest reports whether s asks for advice and in which language
// the matching pattern is written.
func (l *Lexicon) MatchAdviceRequest(s string) (Language, bool) {
	for _, m := range l.adviceRequests {
		if m.re.MatchString(s) {
			return m.language, true
		}
	}
	return "", false
}

// MatchesPerspectiveRequest reports whether s asks for an opinion.
func (l *Lexicon) MatchesPerspectiveRequest(s string) bool {
	for _, re := range l.perspectiveRequests {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// StartsWithReflection reports whether the trimmed s begins with a
// reflection starter, ignoring case.
func (l *Lexicon) StartsWithReflection(s string) bool {
	lower := strings.ToLower(strings.TrimSpace(s))
	for _, starter := range l.startersLower {
		if strings.HasPrefix(lower, starter) {
			return true
		}
	}
	return false
}

func (t Tables) clone() Tables {
	return Tables{
		BannedPhrases:              append([]string(nil), t.BannedPhrases...),
		BannedPatterns:             append([]string(nil), t.BannedPatterns...),
		AdviceLikePatterns:         append([]string(nil), t.AdviceLikePatterns...),
		ActionVerbPatterns:         append([]string(nil), t.ActionVerbPatterns...),
		AdviceRequestPatterns:      append([]RequestPattern(nil), t.AdviceRequestPatterns...),
		PerspectiveRequestPatterns: append([]string(nil), t.PerspectiveRequestPatterns...),
		ReflectionStarters:         append([]string(nil), t.ReflectionStarters...),
		RewriteClosers:             append([]string(nil), t.RewriteClosers...),
	}
}

func checkStrings(table string, entries []string) error {
	if len(entries) == 0 {
		return &CompileError{Table: table, Index: -1, Err: ErrEmptyTable}
	}
	for i, e := range entries {
		if strings.TrimSpace(e) == "" {
			return &CompileError{Table: table, Index: i, Err: ErrEmptyEntry}
		}
	}
	return nil
}

func compileAll(table string, patterns []string) ([]*regexp.Regexp, error) {
	if len(patterns) == 0 {
		return nil, &CompileError{Table: table, Index: -1, Err: ErrEmptyTable}
	}
	out := make([]*regexp.Regexp, 0, len(patterns))
	for i, p := range patterns {
		re, err := compilePattern(table, i, p)
		if err != nil {
			return nil, err
		}
		out = append(out, re)
	}
	return out, nil
}

func compilePattern(table string, index int, pattern string) (*regexp.Regexp, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, &CompileError{Table: table, Index: index, Err: ErrEmptyEntry}
	}
	re, err := regexp.Compile(`(?i)` + pattern)
	if err != nil {
		return nil, &CompileError{Table: table, Index: index, Err: err}
	}
	return re, nil
}

func firstMatch(res []*regexp.Regexp, sources []string, s string) (string, bool) {
	for i, re := range res {
		if re.MatchString(s) {
			return sources[i], true
		}
	}
	return "", false
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

func mod(i, n int) int {
	r := i % n
	if r < 0 {
		r += n
	}
	return r
}
