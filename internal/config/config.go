package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Workflow providers.
const (
	ProviderWebhook = "webhook"
	ProviderGemini  = "gemini"
)

var (
	ErrMissingWorkflowURL = errors.New("WORKFLOW_BASE_URL is required for the webhook provider")
	ErrMissingGeminiKey   = errors.New("GEMINI_API_KEY is required for the gemini provider")
	ErrUnknownProvider    = errors.New("WORKFLOW_PROVIDER must be webhook or gemini")
	ErrMissingStoreURL    = errors.New("STORE_BASE_URL is required when CATALOG_SOURCE is not set")
	ErrMissingStoreKey    = errors.New("STORE_API_KEY is required when CATALOG_SOURCE is not set")
)

type Config struct {
	LogLevel string

	WorkflowProvider string
	WorkflowBaseURL  string
	WorkflowPaths    map[string]string

	StoreBaseURL    string
	StoreTable      string
	StoreAPIKey     string
	StoreBrandField string
	StorePageSize   int

	// CatalogSource is a local export (.jsonl, .json, .parquet) used instead
	// of the record store when set.
	CatalogSource string

	GeminiAPIKey string
	GeminiModel  string

	HTTPTimeout time.Duration
}

// Load reads configuration from the environment. It does not validate
// required keys; callers check the parts they use with RequireWorkflow and
// RequireCatalog.
func Load() Config {
	cfg := Config{
		LogLevel:         strings.ToLower(getEnv("LOG_LEVEL", "info")),
		WorkflowProvider: strings.ToLower(getEnv("WORKFLOW_PROVIDER", ProviderWebhook)),
		WorkflowBaseURL:  strings.TrimRight(getEnv("WORKFLOW_BASE_URL", ""), "/"),
		WorkflowPaths: map[string]string{
			"prompt": getEnv("WORKFLOW_PROMPT_PATH", "/webhook/prompt"),
			"image":  getEnv("WORKFLOW_IMAGE_PATH", "/webhook/image"),
			"edit":   getEnv("WORKFLOW_EDIT_PATH", "/webhook/edit"),
		},
		StoreBaseURL:    strings.TrimRight(getEnv("STORE_BASE_URL", ""), "/"),
		StoreTable:      getEnv("STORE_TABLE", "References"),
		StoreAPIKey:     getEnv("STORE_API_KEY", ""),
		StoreBrandField: getEnv("STORE_BRAND_FIELD", "brand_name"),
		StorePageSize:   getEnvInt("STORE_PAGE_SIZE", 100),
		CatalogSource:   getEnv("CATALOG_SOURCE", ""),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		HTTPTimeout:     time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 60)) * time.Second,
	}

	if cfg.StorePageSize < 1 || cfg.StorePageSize > 100 {
		cfg.StorePageSize = 100
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 60 * time.Second
	}

	return cfg
}

// RequireWorkflow checks the keys needed to call the workflow backend.
func (c Config) RequireWorkflow() error {
	switch c.WorkflowProvider {
	case ProviderWebhook:
		if c.WorkflowBaseURL == "" {
			return ErrMissingWorkflowURL
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return ErrMissingGeminiKey
		}
	default:
		return ErrUnknownProvider
	}
	return nil
}

// RequireCatalog checks the keys needed to load the reference catalog.
func (c Config) RequireCatalog() error {
	if c.CatalogSource != "" {
		return nil
	}
	switch {
	case c.StoreBaseURL == "":
		return ErrMissingStoreURL
	case c.StoreAPIKey == "":
		return ErrMissingStoreKey
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
