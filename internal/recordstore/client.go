// Package recordstore lists reference rows from the tabular record store.
// Column names there are free text, so rows are flattened into generic
// records and read through the reference synonym table.
package recordstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/brandstudio/promptdesk/internal/catalog"
	"github.com/brandstudio/promptdesk/internal/payload"
)

// maxPages bounds pagination in case the store keeps returning offsets.
const maxPages = 100

type Options struct {
	BaseURL    string
	Table      string
	APIKey     string
	BrandField string
	PageSize   int
	HTTPClient *http.Client
}

// Client reads reference rows page by page.
type Client struct {
	baseURL    string
	table      string
	apiKey     string
	brandField string
	pageSize   int
	httpClient *http.Client
}

// listResponse is the store's page envelope.
type listResponse struct {
	Records []storeRecord `json:"records"`
	Offset  string        `json:"offset"`
}

type storeRecord struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	brandField := opts.BrandField
	if brandField == "" {
		brandField = "brand_name"
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		table:      opts.Table,
		apiKey:     opts.APIKey,
		brandField: brandField,
		pageSize:   pageSize,
		httpClient: httpClient,
	}
}

// References lists every row for brand, following pagination offsets.
func (c *Client) References(ctx context.Context, brand string) ([]catalog.RawReference, error) {
	recs, err := c.List(ctx, brand)
	if err != nil {
		return nil, err
	}
	refs := make([]catalog.RawReference, 0, len(recs))
	for _, rec := range recs {
		refs = append(refs, catalog.ReferenceFromRecord(rec))
	}
	return refs, nil
}

// List returns flattened rows: the store id under "id" plus every column.
func (c *Client) List(ctx context.Context, brand string) ([]payload.Record, error) {
	var out []payload.Record
	offset := ""

	for page := 1; page <= maxPages; page++ {
		resp, err := c.fetchPage(ctx, brand, offset)
		if err != nil {
			return nil, err
		}

		for _, r := range resp.Records {
			out = append(out, Flatten(r.ID, r.Fields))
		}

		slog.Debug("Fetched record store page", "table", c.table, "brand", brand, "page", page, "rows", len(resp.Records))

		if resp.Offset == "" {
			return out, nil
		}
		offset = resp.Offset
	}

	slog.Warn("Record store pagination limit reached", "table", c.table, "brand", brand, "pages", maxPages)
	return out, nil
}

// Flatten merges a row's id into its columns. A column literally named "id"
// does not override the store id.
func Flatten(id string, columns map[string]any) payload.Record {
	rec := make(payload.Record, len(columns)+1)
	for k, v := range columns {
		rec[k] = v
	}
	if id != "" {
		rec["id"] = id
	}
	return rec
}

func (c *Client) fetchPage(ctx context.Context, brand, offset string) (*listResponse, error) {
	u, err := url.Parse(c.baseURL + "/" + url.PathEscape(c.table))
	if err != nil {
		return nil, fmt.Errorf("failed to build record store URL: %w", err)
	}

	q := u.Query()
	q.Set("pageSize", strconv.Itoa(c.pageSize))
	if brand = strings.TrimSpace(brand); brand != "" {
		q.Set("filterByFormula", BrandFormula(c.brandField, brand))
	}
	if offset != "" {
		q.Set("offset", offset)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query record store: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("record store returned status %d", resp.StatusCode)
	}

	var result listResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode record store response: %w", err)
	}
	return &result, nil
}

// BrandFormula builds an equality filter on the brand column.
func BrandFormula(field, brand string) string {
	escaped := strings.ReplaceAll(brand, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return fmt.Sprintf(`{%s} = "%s"`, field, escaped)
}
