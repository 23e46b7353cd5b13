// Package lexicon holds the static phrase and pattern tables used by the reply
// guardrail.
//
// A Lexicon is compiled once from a set of Tables and is read-only afterwards,
// so a single instance can be shared by any number of goroutines without
// locking. The tables are:
//
//   - banned phrases: literal strings that are always removed from replies
//   - banned patterns: case-insensitive regular expressions for directive language
//   - advice-like patterns: imperative suggestion forms ("you could try", ...)
//   - action-verb patterns: diagnostic set used to audit rewritten output
//   - advice-request patterns: user phrasings that ask for advice, tagged by language
//   - perspective-request patterns: user phrasings that ask for an opinion
//   - reflection starters and rewrite closers: the pieces of replacement sentences
//
// # Usage
//
//	lex := lexicon.Default()
//
//	if lex.ContainsBannedPhrase(sentence) {
//		// rewrite or strip
//	}
//
// Custom tables can be layered over the defaults from a YAML file:
//
//	lex, err := lexicon.LoadFile("lexicon.yaml")
//	if err != nil {
//		return fmt.Errorf("failed to load lexicon: %w", err)
//	}
package lexicon
