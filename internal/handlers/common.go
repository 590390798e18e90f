package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/brandstudio/promptdesk/internal/storage"
	"github.com/brandstudio/promptdesk/internal/workflow"
)

// maxBodyBytes caps request bodies forwarded or normalized.
const maxBodyBytes = 10 << 20

type Handler struct {
	catalogStore *storage.CatalogStore
	backend      workflow.Backend
}

// New wires the handler. backend may be nil when no workflow backend is
// configured; generate endpoints then answer 503.
func New(catalogStore *storage.CatalogStore, backend workflow.Backend) *Handler {
	return &Handler{
		catalogStore: catalogStore,
		backend:      backend,
	}
}

// Routes registers every endpoint on mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/api/catalog", h.HandleCatalog)
	mux.HandleFunc("/api/catalog/record-id", h.HandleRecordID)
	mux.HandleFunc("/api/prompts/normalize", h.HandleNormalizePrompt)
	mux.HandleFunc("/api/images/normalize", h.HandleNormalizeImage)
	mux.HandleFunc("/api/prompts/generate", h.HandleGeneratePrompt)
	mux.HandleFunc("/api/images/generate", h.HandleGenerateImage)
	mux.HandleFunc("/api/images/edit", h.HandleEditImage)
	mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "err", err)
		}
	})
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Log(context.Background(), errorLevel(code), message, "status", code)
	http.Error(w, message, code)
}

// errorLevel logs client errors below server errors.
func errorLevel(code int) slog.Level {
	if code >= http.StatusInternalServerError {
		return slog.LevelError
	}
	return slog.LevelWarn
}

// readBody reads a bounded request body.
func (h *Handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.writeError(w, "Unable to read request body: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return body, true
}
