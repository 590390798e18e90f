package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/brandstudio/promptdesk/internal/fields"
	"github.com/brandstudio/promptdesk/internal/payload"
	"github.com/brandstudio/promptdesk/internal/workflow"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", `{"mood":"calm"}`, `{"mood":"calm"}`},
		{"json fence", "```json\n{\"mood\":\"calm\"}\n```", `{"mood":"calm"}`},
		{"bare fence", "```\n{\"mood\":\"calm\"}\n```\n", `{"mood":"calm"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripFences(tt.input)
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
			if rec := fields.BuildPromptRecord(payload.Decode([]byte(got))); rec.Mood != "calm" {
				t.Errorf("Expected mood calm after decoding, got %+v", rec)
			}
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(json.RawMessage(`{"brand":"Acme"}`))

	for _, f := range fields.Prompt {
		if !strings.Contains(prompt, f.Name) {
			t.Errorf("Expected prompt to mention %s", f.Name)
		}
	}
	if !strings.Contains(prompt, `{"brand":"Acme"}`) {
		t.Error("Expected prompt to include the request body")
	}
	if !strings.Contains(BuildPrompt(nil), "{}") {
		t.Error("Expected empty body to render as {}")
	}
}

func TestInvokeRejectsImageWorkflows(t *testing.T) {
	g := New("key", "")
	_, err := g.Invoke(context.Background(), workflow.Image, nil)
	if !errors.Is(err, workflow.ErrUnknownWorkflow) {
		t.Errorf("Expected ErrUnknownWorkflow, got %v", err)
	}
}

func TestExtractTextRequiresKey(t *testing.T) {
	if _, err := New("", "").ExtractText(context.Background(), "hi"); err == nil {
		t.Error("Expected an error without an API key")
	}
}

var _ workflow.Backend = (*Gemini)(nil)
