package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/brandstudio/promptdesk/internal/fields"
	"github.com/brandstudio/promptdesk/internal/payload"
	"github.com/brandstudio/promptdesk/internal/workflow"
)

const promptInstruction = `You write prompts for an AI image generator used by a marketing team.
Using the brand and reference details in the JSON request below, reply with a single JSON object
with exactly these string keys: %s.
Do not wrap the JSON in markdown.

Request:
%s`

// Gemini is a workflow backend that drafts prompt records with Google Gemini.
// Only the prompt workflow is supported; image workflows need the webhook
// backend.
type Gemini struct {
	apiKey      string
	model       string
	temperature float32
}

// New returns a new Gemini backend
func New(apiKey, model string) *Gemini {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &Gemini{apiKey: apiKey, model: model, temperature: 0.7}
}

// Invoke drafts a prompt record and returns it decoded like a webhook reply.
func (g *Gemini) Invoke(ctx context.Context, name string, body json.RawMessage) (any, error) {
	if name != workflow.Prompt {
		return nil, fmt.Errorf("%w: %s is not supported by the gemini backend", workflow.ErrUnknownWorkflow, name)
	}

	text, err := g.ExtractText(ctx, BuildPrompt(body))
	if err != nil {
		return nil, err
	}
	return payload.Decode([]byte(StripFences(text))), nil
}

// ExtractText sends a single text prompt and returns the first text part.
func (g *Gemini) ExtractText(ctx context.Context, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create new gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	model.SetTemperature(g.temperature)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned from Gemini")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("empty content returned from Gemini")
	}

	if txt, ok := candidate.Content.Parts[0].(genai.Text); ok {
		return string(txt), nil
	}

	return "", fmt.Errorf("unexpected response format from Gemini")
}

// BuildPrompt renders the drafting instruction for a request body.
func BuildPrompt(body json.RawMessage) string {
	keys := make([]string, 0, len(fields.Prompt))
	for _, f := range fields.Prompt {
		keys = append(keys, f.Name)
	}
	request := strings.TrimSpace(string(body))
	if request == "" {
		request = "{}"
	}
	return fmt.Sprintf(promptInstruction, strings.Join(keys, ", "), request)
}

// StripFences removes a surrounding markdown code fence, which models add
// even when asked not to.
func StripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[i+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "```"))
}
