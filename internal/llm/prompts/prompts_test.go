package prompts

import (
	"strings"
	"testing"
)

func TestFileSummary(t *testing.T) {
	system, user, err := FileSummary("cmd/main.go", "package main")
	if err != nil {
		t.Fatalf("FileSummary returned error: %v", err)
	}
	if system == "" {
		t.Error("expected a non-empty system prompt")
	}
	if !strings.Contains(user, "cmd/main.go") {
		t.Errorf("user prompt missing file path: %q", user)
	}
	if !strings.Contains(user, "package main") {
		t.Errorf("user prompt missing file content: %q", user)
	}
}

func TestDirectorySummary(t *testing.T) {
	children := []ChildSummary{
		{Name: "a.go", Summary: "first child"},
		{Name: "b/", Summary: "second child"},
	}
	_, user, err := DirectorySummary("internal", children)
	if err != nil {
		t.Fatalf("DirectorySummary returned error: %v", err)
	}
	for _, want := range []string{"internal", "a.go", "first child", "b/", "second child"} {
		if !strings.Contains(user, want) {
			t.Errorf("user prompt missing %q:\n%s", want, user)
		}
	}
}

func TestRootOverview(t *testing.T) {
	_, user, err := RootOverview("/work/project", []string{"main.go", "sub/lib.go"})
	if err != nil {
		t.Fatalf("RootOverview returned error: %v", err)
	}
	if !strings.Contains(user, "main.go") || !strings.Contains(user, "sub/lib.go") {
		t.Errorf("user prompt missing paths:\n%s", user)
	}
}

func TestChatContextInSystemPrompt(t *testing.T) {
	system, user, err := Chat("File main.go: entry point", "what is the entry point?")
	if err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if !strings.Contains(system, "File main.go: entry point") {
		t.Errorf("system prompt missing findings context:\n%s", system)
	}
	if !strings.Contains(user, "what is the entry point?") {
		t.Errorf("user prompt missing question:\n%s", user)
	}
}
