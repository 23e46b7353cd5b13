package config

import (
	"os"
	"path/filepath"
	"testing"

	"anchor-hq/anchor/pkg/guardrail/lexicon"
)

func TestGuardrailConfig_BuildLexicon(t *testing.T) {
	t.Run("defaults share the default lexicon", func(t *testing.T) {
		lex, err := GuardrailConfig{}.BuildLexicon()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if lex != lexicon.Default() {
			t.Error("expected the shared default lexicon")
		}
	})

	t.Run("extra phrases are banned", func(t *testing.T) {
		lex, err := GuardrailConfig{ExtraBannedPhrases: []string{"cheer up"}}.BuildLexicon()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !lex.ContainsBannedPhrase("Come on, cheer up!") {
			t.Error("extra phrase not banned")
		}
		if !lex.ContainsBannedPhrase("you should rest") {
			t.Error("default phrase lost")
		}
	})

	t.Run("file overlay and extras combine", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "lexicon.yaml")
		content := "reflection_starters:\n  - \"I notice\"\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write lexicon: %v", err)
		}

		lex, err := GuardrailConfig{LexiconFile: path, ExtraBannedPhrases: []string{"cheer up"}}.BuildLexicon()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if lex.Starter(3) != "I notice" {
			t.Errorf("Starter(3) = %q, want overlay starter", lex.Starter(3))
		}
		if !lex.ContainsBannedPhrase("cheer up") {
			t.Error("extra phrase not banned")
		}
	})

	t.Run("bad overlay is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "lexicon.yaml")
		if err := os.WriteFile(path, []byte("banned_patterns: [\"(\"]\n"), 0644); err != nil {
			t.Fatalf("failed to write lexicon: %v", err)
		}
		if _, err := (GuardrailConfig{LexiconFile: path}).BuildLexicon(); err == nil {
			t.Error("expected compile error")
		}
	})
}
