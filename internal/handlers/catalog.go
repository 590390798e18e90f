package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/brandstudio/promptdesk/internal/catalog"
)

type catalogResponse struct {
	Brand    string          `json:"brand"`
	LoadedAt time.Time       `json:"loaded_at"`
	Groups   []catalog.Group `json:"groups"`
}

func (h *Handler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	brand := strings.TrimSpace(r.URL.Query().Get("brand"))
	if brand == "" {
		h.writeError(w, "brand is required", http.StatusBadRequest)
		return
	}

	load := h.catalogStore.GetOrLoad
	if r.URL.Query().Get("refresh") != "" {
		load = h.catalogStore.Load
	}

	snap, err := load(r.Context(), brand)
	if err != nil {
		h.writeError(w, "Failed to load catalog: "+err.Error(), http.StatusBadGateway)
		return
	}

	groups := snap.Catalog.Groups()
	if groups == nil {
		groups = []catalog.Group{}
	}
	h.writeJSON(w, catalogResponse{Brand: brand, LoadedAt: snap.LoadedAt, Groups: groups})
}

func (h *Handler) HandleRecordID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	brand := strings.TrimSpace(r.URL.Query().Get("brand"))
	if name == "" || brand == "" {
		h.writeError(w, "name and brand are required", http.StatusBadRequest)
		return
	}

	snap, err := h.catalogStore.GetOrLoad(r.Context(), brand)
	if err != nil {
		h.writeError(w, "Failed to load catalog: "+err.Error(), http.StatusBadGateway)
		return
	}

	id := snap.Catalog.RecordID(name, brand)
	if id == "" {
		h.writeError(w, "No reference named \""+name+"\" for brand "+brand, http.StatusNotFound)
		return
	}
	h.writeJSON(w, map[string]string{"id": id})
}
