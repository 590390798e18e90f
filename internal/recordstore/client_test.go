package recordstore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brandstudio/promptdesk/internal/catalog"
)

func TestReferencesPaginates(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Expected bearer token, got %q", got)
		}
		if r.URL.Path != "/References" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("filterByFormula"); got != `{brand_name} = "Acme"` {
			t.Errorf("Unexpected formula %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("offset") {
		case "":
			_, _ = w.Write([]byte(`{"records":[
				{"id":"rec1","fields":{"prompt_name":"Neon Dragon — A fierce dragon","brand_name":"Acme","prompt_category":"Character"}}
			],"offset":"page2"}`))
		case "page2":
			_, _ = w.Write([]byte(`{"records":[
				{"id":"rec2","fields":{"prompt_name":"Sunset","brand_name":"Acme"}},
				{"id":"rec3","fields":{}}
			]}`))
		default:
			t.Errorf("Unexpected offset %q", r.URL.Query().Get("offset"))
		}
	}))
	defer server.Close()

	client := New(Options{BaseURL: server.URL, Table: "References", APIKey: "secret"})
	refs, err := client.References(context.Background(), "Acme")
	if err != nil {
		t.Fatalf("References failed: %v", err)
	}
	if requests != 2 {
		t.Errorf("Expected 2 requests, got %d", requests)
	}
	if len(refs) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(refs))
	}

	c := catalog.Build(refs)
	if got := c.RecordID("Neon Dragon — A fierce dragon", "Acme"); got != "rec1" {
		t.Errorf("Expected rec1, got %q", got)
	}
	if c.Len() != 2 {
		t.Errorf("Expected the empty row to be skipped, got %d options", c.Len())
	}
}

func TestReferencesStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	if _, err := New(Options{BaseURL: server.URL, Table: "t"}).References(context.Background(), ""); err == nil {
		t.Error("Expected an error for a 401 response")
	}
}

func TestFlatten(t *testing.T) {
	rec := Flatten("rec1", map[string]any{"id": "column-id", "prompt_name": "Fox"})
	if rec["id"] != "rec1" {
		t.Errorf("Expected store id to win, got %v", rec["id"])
	}
	if rec["prompt_name"] != "Fox" {
		t.Errorf("Expected columns to be kept, got %v", rec)
	}
}

func TestBrandFormula(t *testing.T) {
	got := BrandFormula("brand_name", `Say "hi"`)
	want := `{brand_name} = "Say \"hi\""`
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}
