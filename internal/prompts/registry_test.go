package prompts

import (
	"strings"
	"testing"
)

func TestNewRegistryLoadsAnalyzeTask(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}

	task, err := registry.Get("analyze")
	if err != nil {
		t.Fatalf("Get(analyze) error: %v", err)
	}

	if task.Model == "" {
		t.Error("model must not be empty")
	}
	if !strings.Contains(task.System, "JSON") {
		t.Errorf("system prompt should demand JSON output, got %q", task.System)
	}
	if task.MaxContentChars != 10000 {
		t.Errorf("max_content_chars = %d, want 10000", task.MaxContentChars)
	}
}

func TestGetUnknownTask(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}

	if _, err := registry.Get("summarize"); err == nil {
		t.Error("expected error for unknown task, got nil")
	}
}
