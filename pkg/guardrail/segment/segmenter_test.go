package segment

import (
	"reflect"
	"strings"
	"testing"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "empty",
			text: "",
			want: nil,
		},
		{
			name: "whitespace only",
			text: " \t\n ",
			want: nil,
		},
		{
			name: "single sentence",
			text: "I hear you.",
			want: []string{"I hear you."},
		},
		{
			name: "mixed terminators",
			text: "I hear you. That sounds hard! Want to say more?",
			want: []string{"I hear you.", "That sounds hard!", "Want to say more?"},
		},
		{
			name: "trailing fragment without punctuation",
			text: "That sounds hard. I'm here",
			want: []string{"That sounds hard.", "I'm here"},
		},
		{
			name: "repeated punctuation stays attached",
			text: "Wow!!  That's a lot?! Okay.",
			want: []string{"Wow!!", "That's a lot?!", "Okay."},
		},
		{
			name: "newlines between sentences",
			text: "First line.\n\nSecond line.",
			want: []string{"First line.", "Second line."},
		},
		{
			name: "punctuation without following whitespace does not split",
			text: "It costs 3.5 dollars.Really",
			want: []string{"It costs 3.5 dollars.Really"},
		},
		{
			name: "abbreviation over-splits",
			text: "Dr. Smith is kind.",
			want: []string{"Dr.", "Smith is kind."},
		},
		{
			name: "leading and trailing whitespace",
			text: "   Hello there.   ",
			want: []string{"Hello there."},
		},
		{
			name: "non-ascii content",
			text: "我明白。 That’s heavy. 真的",
			want: []string{"我明白。 That’s heavy.", "真的"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Segment(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Segment(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestSegment_NoEmptySentences(t *testing.T) {
	inputs := []string{
		". . .",
		"!? !?",
		"a.  b.   c.",
		"\n.\n",
	}

	for _, in := range inputs {
		for _, s := range Segment(in) {
			if strings.TrimSpace(s) == "" {
				t.Errorf("Segment(%q) produced an empty sentence: %q", in, Segment(in))
			}
		}
	}
}

func TestSegment_JoinPreservesContent(t *testing.T) {
	text := "  I hear you.   You're tired!\nRest is okay?  Maybe  "
	got := Join(Segment(text))
	want := strings.Join(strings.Fields(text), " ")

	if strings.Join(strings.Fields(got), " ") != want {
		t.Errorf("Join(Segment(%q)) = %q, want normalized %q", text, got, want)
	}
}

func BenchmarkSegment(b *testing.B) {
	text := strings.Repeat("That sounds really hard. You could try taking a walk! Is that okay? ", 20)
	for i := 0; i < b.N; i++ {
		Segment(text)
	}
}
