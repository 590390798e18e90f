// Package workflow calls the workflow-automation backend. It only moves
// bytes; responses are handed back decoded but otherwise untouched so the
// normalizers can deal with their shape.
package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/brandstudio/promptdesk/internal/payload"
)

// Workflow names.
const (
	Prompt = "prompt"
	Image  = "image"
	Edit   = "edit"
)

// maxResponseBytes caps how much of an upstream body is read.
const maxResponseBytes = 10 << 20

var ErrUnknownWorkflow = errors.New("unknown workflow")

// Backend runs a named workflow with a JSON-encodable request body and
// returns the decoded response.
type Backend interface {
	Invoke(ctx context.Context, workflow string, body json.RawMessage) (any, error)
}

// StatusError is returned for non-2xx upstream responses.
type StatusError struct {
	Workflow   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("workflow %s returned status %d: %s", e.Workflow, e.StatusCode, e.Body)
}

type Options struct {
	BaseURL    string
	Paths      map[string]string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client posts to per-workflow webhook URLs.
type Client struct {
	baseURL    string
	paths      map[string]string
	httpClient *http.Client
	logger     *slog.Logger
}

func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	paths := make(map[string]string, len(opts.Paths))
	for k, v := range opts.Paths {
		paths[k] = v
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		paths:      paths,
		httpClient: httpClient,
		logger:     logger,
	}
}

// URL returns the webhook URL for a workflow.
func (c *Client) URL(workflow string) (string, error) {
	path, ok := c.paths[workflow]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownWorkflow, workflow)
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path, nil
	}
	return c.baseURL + "/" + strings.TrimLeft(path, "/"), nil
}

// Invoke posts body to the workflow and decodes the reply. An empty or
// non-JSON 2xx body decodes to nil rather than failing.
func (c *Client) Invoke(ctx context.Context, workflow string, body json.RawMessage) (any, error) {
	url, err := c.URL(workflow)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		body = json.RawMessage("{}")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call workflow %s: %w", workflow, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read workflow %s response: %w", workflow, err)
	}

	c.logger.Debug("Workflow responded",
		"workflow", workflow,
		"status", resp.StatusCode,
		"bytes", len(data),
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Workflow: workflow, StatusCode: resp.StatusCode, Body: truncate(string(data), 256)}
	}

	v := payload.Decode(data)
	if v == nil && len(bytes.TrimSpace(data)) > 0 {
		c.logger.Warn("Workflow returned non-JSON body", "workflow", workflow, "bytes", len(data))
	}
	return v, nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
