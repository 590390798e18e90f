package cmd

import (
	"log/slog"
	"net/http"

	"github.com/brandstudio/promptdesk/internal/catalog"
	"github.com/brandstudio/promptdesk/internal/config"
	"github.com/brandstudio/promptdesk/internal/dataset"
	"github.com/brandstudio/promptdesk/internal/gemini"
	"github.com/brandstudio/promptdesk/internal/recordstore"
	"github.com/brandstudio/promptdesk/internal/workflow"
)

// newCatalogSource picks the local export when configured, else the store.
func newCatalogSource(cfg config.Config) (catalog.Source, error) {
	if err := cfg.RequireCatalog(); err != nil {
		return nil, err
	}
	if cfg.CatalogSource != "" {
		slog.Debug("Using local catalog export", "path", cfg.CatalogSource)
		return dataset.NewLoader(cfg.CatalogSource), nil
	}
	return recordstore.New(recordstore.Options{
		BaseURL:    cfg.StoreBaseURL,
		Table:      cfg.StoreTable,
		APIKey:     cfg.StoreAPIKey,
		BrandField: cfg.StoreBrandField,
		PageSize:   cfg.StorePageSize,
		HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout},
	}), nil
}

// newBackend builds the configured workflow backend.
func newBackend(cfg config.Config) (workflow.Backend, error) {
	if err := cfg.RequireWorkflow(); err != nil {
		return nil, err
	}
	if cfg.WorkflowProvider == config.ProviderGemini {
		return gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel), nil
	}
	return workflow.New(workflow.Options{
		BaseURL:    cfg.WorkflowBaseURL,
		Paths:      cfg.WorkflowPaths,
		HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout},
	}), nil
}
