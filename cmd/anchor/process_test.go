package main

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"anchor-hq/anchor/pkg/guardrail"
	"anchor-hq/anchor/pkg/server/handlers"

	"github.com/google/go-cmp/cmp"
)

func TestProcess_Args(t *testing.T) {
	out, _, err := run(t, "", "process", "-u", "I'm so stressed today.", "I hear you.", "You should try to relax.")
	if err != nil {
		t.Fatalf("process error = %v", err)
	}
	if !strings.HasPrefix(out, "I hear you.") {
		t.Errorf("output %q lost the supportive sentence", out)
	}
	if strings.Contains(strings.ToLower(out), "you should") {
		t.Errorf("output %q still contains directive", out)
	}
}

func TestProcess_StdinJSON(t *testing.T) {
	out, _, err := run(t, "You could try a walk.\n", "process", "-u", "What should I do?", "--format", "json", "--verbose")
	if err != nil {
		t.Fatalf("process error = %v", err)
	}

	var resp handlers.PostprocessResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if resp.Content != "You could try a walk." || !resp.Advice {
		t.Errorf("response = %+v, want advice passthrough", resp)
	}
	if resp.Details == nil || resp.Details.Mode != guardrail.ModeAdvice {
		t.Errorf("details = %+v, want advice mode", resp.Details)
	}
}

func TestProcess_MessagesFile(t *testing.T) {
	transcript := writeFile(t, "chat.json", `[
		{"role":"user","content":"What should I do?"},
		{"role":"assistant","content":"Tell me more."},
		{"role":"user","content":"I'm just tired."}
	]`)

	out, _, err := run(t, "", "process", "--messages", transcript, "--format", "json", "You need to calm down.")
	if err != nil {
		t.Fatalf("process error = %v", err)
	}
	var resp handlers.PostprocessResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Advice || resp.Replaced != 1 {
		t.Errorf("response = %+v, want strict rewrite from last user turn", resp)
	}
}

func TestProcess_Errors(t *testing.T) {
	batch := writeFile(t, "in.jsonl", `{"reply":"hi"}`+"\n")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad format", []string{"process", "--format", "xml", "hi"}, "unknown output format"},
		{"bad transcript", []string{"process", "--messages", writeFile(t, "bad.json", "{"), "hi"}, "failed to parse transcript"},
		{"missing transcript", []string{"process", "--messages", "/nonexistent/chat.json", "hi"}, "failed to read transcript"},
		{"args with input", []string{"process", "--input", batch, "hi"}, "cannot be combined"},
		{"missing input", []string{"process", "--input", "/nonexistent/in.jsonl"}, "failed to open input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, "", tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestProcess_Batch(t *testing.T) {
	input := writeFile(t, "in.jsonl", strings.Join([]string{
		`{"reply":"You should rest.","last_user_message":"I'm tired."}`,
		``,
		`{"reply":"You could try a walk.","last_user_message":"What should I do?"}`,
		`{"reply":"It sounds like a lot.","messages":[{"role":"user","content":"What do you think?"}],"verbose":true}`,
		`{"reply":""}`,
	}, "\n"))

	out, stderr, err := run(t, "", "process", "--input", input, "--concurrency", "2", "--progress")
	if err != nil {
		t.Fatalf("process error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	type summary struct {
		Advice      bool
		Perspective bool
		Replaced    int
		Verbose     bool
	}
	var got []summary
	for _, line := range lines {
		var resp handlers.PostprocessResponse
		if err := json.Unmarshal([]byte(line), &resp); err != nil {
			t.Fatalf("decode %q: %v", line, err)
		}
		got = append(got, summary{resp.Advice, resp.Perspective, resp.Replaced, resp.Details != nil})
	}

	want := []summary{
		{Replaced: 1},
		{Advice: true},
		{Perspective: true, Verbose: true},
		{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("batch responses mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(stderr, "4/4") {
		t.Errorf("progress output missing from stderr: %q", stderr)
	}
}

func TestProcess_BatchStdin(t *testing.T) {
	out, _, err := run(t, `{"reply":"You need to calm down.","last_user_message":"ugh"}`+"\n", "process", "--input", "-")
	if err != nil {
		t.Fatalf("process error = %v", err)
	}
	if strings.Count(out, "\n") != 1 || strings.Contains(strings.ToLower(out), "calm down") {
		t.Errorf("output = %q", out)
	}
}

func TestReadBatch_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"invalid json", "{\"reply\":\"a\"}\n{oops\n", "line 2: invalid JSON"},
		{"missing reply", "{\"last_user_message\":\"hi\"}\n", "line 1: missing required field"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readBatch(strings.NewReader(tt.input))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("readBatch() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestRunBatch_KeepsOrder(t *testing.T) {
	var requests []handlers.PostprocessRequest
	var want []string
	for i := 0; i < 50; i++ {
		reply := strings.Repeat("It sounds like a lot. ", i%5+1)
		requests = append(requests, handlers.PostprocessRequest{Reply: &reply})
		want = append(want, guardrail.Process(reply, ""))
	}

	responses, err := runBatch(context.Background(), guardrail.Default(), requests, 8, nil)
	if err != nil {
		t.Fatalf("runBatch() error = %v", err)
	}
	got := make([]string, len(responses))
	for i, r := range responses {
		got[i] = r.Content
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestRunBatch_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reply := "You should rest."
	_, err := runBatch(ctx, guardrail.Default(), []handlers.PostprocessRequest{{Reply: &reply}}, 1, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("runBatch() error = %v, want context.Canceled", err)
	}
}
