package persona

import (
	"strings"
	"testing"
)

func TestIdentity(t *testing.T) {
	if AssistantName != "Anchor" {
		t.Errorf("AssistantName = %q, want Anchor", AssistantName)
	}
	for _, want := range []string{"empathize", "advice unless you explicitly ask"} {
		if !strings.Contains(AssistantPurpose, want) {
			t.Errorf("AssistantPurpose missing %q", want)
		}
	}
}

func TestResponsePriority(t *testing.T) {
	tests := []struct {
		priority ResponsePriority
		want     string
	}{
		{Empathy, "Empathy"},
		{Clarify, "Clarify"},
		{Stay, "Stay"},
		{SuggestOnlyIfAsked, "SuggestOnlyIfAsked"},
	}

	for _, tt := range tests {
		if string(tt.priority) != tt.want {
			t.Errorf("priority = %q, want %q", tt.priority, tt.want)
		}
	}

	got := Priorities()
	if len(got) != 4 || got[0] != Empathy || got[3] != SuggestOnlyIfAsked {
		t.Errorf("Priorities() = %v", got)
	}
}

func TestBuildSystemPrompt(t *testing.T) {
	prompt := BuildSystemPrompt()

	if !strings.HasPrefix(prompt, "You are Anchor. "+AssistantPurpose) {
		t.Errorf("prompt does not open with identity: %q", prompt[:60])
	}

	wants := []string{
		"Do not diagnose",
		"Stay present.",
		"Respond like a real person in conversation:",
		"- Vary your openings.",
		"- Do not follow a formula",
	}
	for _, want := range wants {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	if strings.HasSuffix(prompt, "\n") {
		t.Error("prompt should not end with a newline")
	}
	if BuildSystemPrompt() != prompt {
		t.Error("BuildSystemPrompt is not deterministic")
	}
}
