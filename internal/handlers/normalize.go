package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/brandstudio/promptdesk/internal/drive"
	"github.com/brandstudio/promptdesk/internal/fields"
	"github.com/brandstudio/promptdesk/internal/payload"
	"github.com/brandstudio/promptdesk/internal/workflow"
)

func (h *Handler) HandleNormalizePrompt(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, fields.BuildPromptRecord(payload.Decode(body)))
}

func (h *Handler) HandleNormalizeImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, drive.Canonicalize(payload.Decode(body)))
}

func (h *Handler) HandleGeneratePrompt(w http.ResponseWriter, r *http.Request) {
	v, ok := h.invoke(w, r, workflow.Prompt)
	if !ok {
		return
	}
	h.writeJSON(w, fields.BuildPromptRecord(v))
}

func (h *Handler) HandleGenerateImage(w http.ResponseWriter, r *http.Request) {
	v, ok := h.invoke(w, r, workflow.Image)
	if !ok {
		return
	}
	h.writeJSON(w, drive.Canonicalize(v))
}

func (h *Handler) HandleEditImage(w http.ResponseWriter, r *http.Request) {
	v, ok := h.invoke(w, r, workflow.Edit)
	if !ok {
		return
	}
	h.writeJSON(w, drive.Canonicalize(v))
}

// invoke forwards the request body to a workflow. Transport and status
// failures stop here; only a successful reply reaches the normalizers.
func (h *Handler) invoke(w http.ResponseWriter, r *http.Request, name string) (any, bool) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return nil, false
	}
	if h.backend == nil {
		h.writeError(w, "Workflow backend is not configured", http.StatusServiceUnavailable)
		return nil, false
	}

	body, ok := h.readBody(w, r)
	if !ok {
		return nil, false
	}

	v, err := h.backend.Invoke(r.Context(), name, json.RawMessage(body))
	if err != nil {
		var statusErr *workflow.StatusError
		switch {
		case errors.Is(err, workflow.ErrUnknownWorkflow):
			h.writeError(w, err.Error(), http.StatusNotImplemented)
		case errors.As(err, &statusErr):
			h.writeError(w, "Workflow failed: "+err.Error(), http.StatusBadGateway)
		default:
			h.writeError(w, "Workflow request failed: "+err.Error(), http.StatusBadGateway)
		}
		return nil, false
	}

	slog.Debug("Workflow payload received", "workflow", name, "shape", payload.Classify(v).String())
	return v, true
}
