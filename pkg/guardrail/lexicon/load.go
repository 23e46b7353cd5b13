package lexicon

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML lexicon overlay from path and compiles it over the
// default tables.
func LoadFile(path string) (*Lexicon, error) {
	tables, err := LoadTables(path)
	if err != nil {
		return nil, err
	}

	lex, err := Compile(tables)
	if err != nil {
		return nil, fmt.Errorf("invalid lexicon file %q: %w", path, err)
	}
	return lex, nil
}

// LoadTables reads a YAML lexicon overlay from path and layers it over the
// default tables without compiling the result.
func LoadTables(path string) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("failed to read lexicon file %q: %w", path, err)
	}

	tables, err := Overlay(DefaultTables(), data)
	if err != nil {
		return Tables{}, fmt.Errorf("failed to parse lexicon file %q: %w", path, err)
	}
	return tables, nil
}

// Overlay decodes a YAML document and layers it over base. A table present in
// the document replaces the corresponding base table entirely; absent tables
// keep their base values. Unknown keys are rejected.
func Overlay(base Tables, data []byte) (Tables, error) {
	var overlay Tables

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&overlay); err != nil && !errors.Is(err, io.EOF) {
		return Tables{}, err
	}

	out := base.clone()
	if overlay.BannedPhrases != nil {
		out.BannedPhrases = overlay.BannedPhrases
	}
	if overlay.BannedPatterns != nil {
		out.BannedPatterns = overlay.BannedPatterns
	}
	if overlay.AdviceLikePatterns != nil {
		out.AdviceLikePatterns = overlay.AdviceLikePatterns
	}
	if overlay.ActionVerbPatterns != nil {
		out.ActionVerbPatterns = overlay.ActionVerbPatterns
	}
	if overlay.AdviceRequestPatterns != nil {
		out.AdviceRequestPatterns = overlay.AdviceRequestPatterns
	}
	if overlay.PerspectiveRequestPatterns != nil {
		out.PerspectiveRequestPatterns = overlay.PerspectiveRequestPatterns
	}
	if overlay.ReflectionStarters != nil {
		out.ReflectionStarters = overlay.ReflectionStarters
	}
	if overlay.RewriteClosers != nil {
		out.RewriteClosers = overlay.RewriteClosers
	}
	return out, nil
}

// WithExtraBannedPhrases returns a copy of t with phrases appended to the
// banned-phrase table, skipping duplicates.
func (t Tables) WithExtraBannedPhrases(phrases ...string) Tables {
	out := t.clone()
	seen := make(map[string]bool, len(out.BannedPhrases))
	for _, p := range out.BannedPhrases {
		seen[p] = true
	}
	for _, p := range phrases {
		if seen[p] {
			continue
		}
		seen[p] = true
		out.BannedPhrases = append(out.BannedPhrases, p)
	}
	return out
}

// Marshal encodes t as YAML.
func (t Tables) Marshal() ([]byte, error) {
	return yaml.Marshal(t)
}
