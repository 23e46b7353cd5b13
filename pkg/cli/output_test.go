package cli

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"
)

type rendered struct{ name string }

func (r rendered) RenderText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "name: %s\n", r.name)
	return err
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"json", FormatJSON, false},
		{"jsonl", FormatJSONL, false},
		{"csv", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatters(t *testing.T) {
	data := map[string]any{"content": "<hi> & bye", "replaced": 1}

	tests := []struct {
		name   string
		format OutputFormat
		data   any
		want   string
	}{
		{"json indented", FormatJSON, data, "{\n  \"content\": \"<hi> & bye\",\n  \"replaced\": 1\n}\n"},
		{"jsonl compact", FormatJSONL, data, "{\"content\":\"<hi> & bye\",\"replaced\":1}\n"},
		{"text renderer", FormatText, rendered{name: "anchor"}, "name: anchor\n"},
		{"text fallback", FormatText, 42, "42\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewFormatter(tt.format).FormatTo(&buf, tt.data); err != nil {
				t.Fatalf("FormatTo() error = %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("FormatTo() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestStyles_PlainWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	s := NewStyles(&buf)

	if got := s.Check(true); got != "✓" {
		t.Errorf("Check(true) = %q, want plain check mark", got)
	}
	if got := s.Check(false); got != "✗" {
		t.Errorf("Check(false) = %q, want plain cross", got)
	}
	if got := s.Replace.Render("x"); strings.Contains(got, "\x1b[") {
		t.Errorf("Render() emitted escape codes for a non-terminal writer: %q", got)
	}
}
