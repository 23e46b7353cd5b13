package config

import (
	"fmt"

	"anchor-hq/anchor/pkg/guardrail/lexicon"
)

// BuildLexicon compiles the lexicon described by cfg: the built-in tables,
// overlaid by LexiconFile when set, plus ExtraBannedPhrases. With neither
// set it returns the shared default lexicon.
func (cfg GuardrailConfig) BuildLexicon() (*lexicon.Lexicon, error) {
	if cfg.LexiconFile == "" && len(cfg.ExtraBannedPhrases) == 0 {
		return lexicon.Default(), nil
	}

	tables := lexicon.DefaultTables()
	if cfg.LexiconFile != "" {
		var err error
		if tables, err = lexicon.LoadTables(cfg.LexiconFile); err != nil {
			return nil, err
		}
	}

	lex, err := lexicon.Compile(tables.WithExtraBannedPhrases(cfg.ExtraBannedPhrases...))
	if err != nil {
		return nil, fmt.Errorf("failed to build lexicon: %w", err)
	}
	return lex, nil
}
