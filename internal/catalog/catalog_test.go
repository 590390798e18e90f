package catalog

import (
	"reflect"
	"testing"

	"github.com/brandstudio/promptdesk/internal/payload"
)

func TestSplitCompositeName(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		label       string
		description string
	}{
		{"label only", "Neon Dragon", "Neon Dragon", ""},
		{"label and description", "Neon Dragon — A fierce dragon", "Neon Dragon", "A fierce dragon"},
		{"extra separators stay in description", "A — B — C", "A", "B — C"},
		{"trims both parts", "  Fox  —   quick  ", "Fox", "quick"},
		{"hyphen is not a separator", "Sci-Fi - Robot", "Sci-Fi - Robot", ""},
		{"dangling separator", "Lonely — ", "Lonely", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, description := SplitCompositeName(tt.input)
			if label != tt.label || description != tt.description {
				t.Errorf("Expected (%q, %q), got (%q, %q)", tt.label, tt.description, label, description)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	c := Build([]RawReference{
		{ID: "rec1", PromptName: "Neon Dragon — A fierce dragon", BrandName: "Acme", Category: " Character "},
		{ID: "rec2", PromptName: "   ", BrandName: "Acme", Category: "Character"},
		{ID: "rec3", PromptName: "Sunset Beach", BrandName: "Acme"},
	})

	want := []Option{
		{ID: "Neon Dragon — A fierce dragon", Label: "Neon Dragon", Description: "A fierce dragon", Category: "Character"},
		{ID: "Sunset Beach", Label: "Sunset Beach", Description: "", Category: FallbackCategory},
	}
	if got := c.Options(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %+v, got %+v", want, got)
	}

	opt, ok := c.Option("Neon Dragon — A fierce dragon")
	if !ok || opt.Label != "Neon Dragon" {
		t.Errorf("Expected lookup by id to round-trip, got %+v %v", opt, ok)
	}
	if got := c.RecordID(opt.ID, "Acme"); got != "rec1" {
		t.Errorf("Expected option id to resolve to rec1, got %q", got)
	}
}

func TestRecordIDDuplicates(t *testing.T) {
	c := Build([]RawReference{
		{ID: "recA", PromptName: "Neon Dragon — A fierce dragon", BrandName: "Acme"},
		{ID: "recB", PromptName: "Neon Dragon — A fierce dragon", BrandName: "Acme"},
	})

	if got := c.RecordID("Neon Dragon — A fierce dragon", "Acme"); got != "recA" {
		t.Errorf("Expected first match recA, got %q", got)
	}
	if c.Len() != 1 {
		t.Errorf("Expected duplicate names to produce one option, got %d", c.Len())
	}
}

func TestRecordIDMisses(t *testing.T) {
	c := Build([]RawReference{
		{ID: "rec1", PromptName: "Fox", BrandName: "Acme"},
		{ID: "rec2", PromptName: "Fox", BrandName: "Globex"},
	})

	tests := []struct {
		name  string
		query string
		brand string
		want  string
	}{
		{"exact", "Fox", "Acme", "rec1"},
		{"brand disambiguates", "Fox", "Globex", "rec2"},
		{"trimmed input", "  Fox ", " Acme", "rec1"},
		{"case sensitive", "fox", "Acme", ""},
		{"unknown brand", "Fox", "Initech", ""},
		{"empty name", "", "Acme", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.RecordID(tt.query, tt.brand); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestGroupsOrdering(t *testing.T) {
	c := Build([]RawReference{
		{PromptName: "a", Category: "Zebra"},
		{PromptName: "b"},
		{PromptName: "c", Category: "Scene"},
		{PromptName: "d", Category: "Alpaca"},
		{PromptName: "e", Category: "character"},
		{PromptName: "f", Category: "Scene"},
	})

	var got []string
	for _, g := range c.Groups() {
		got = append(got, g.Category)
	}
	want := []string{"Character", "Scene", "Alpaca", "Zebra", FallbackCategory}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	for _, g := range c.Groups() {
		if g.Category == "Scene" {
			if len(g.Options) != 2 || g.Options[0].ID != "c" || g.Options[1].ID != "f" {
				t.Errorf("Expected Scene options in load order, got %+v", g.Options)
			}
		}
	}
}

func TestGroupsFoldPreferredCase(t *testing.T) {
	c := Build([]RawReference{
		{PromptName: "a", Category: "Character"},
		{PromptName: "b", Category: "character"},
		{PromptName: "c", Category: "SCENE"},
	})

	groups := c.Groups()
	if len(groups) != 2 {
		t.Fatalf("Expected 2 groups, got %+v", groups)
	}
	if groups[0].Category != "Character" || len(groups[0].Options) != 2 {
		t.Errorf("Expected one Character group with 2 options, got %+v", groups[0])
	}
	if groups[1].Category != "Scene" {
		t.Errorf("Expected Scene group, got %q", groups[1].Category)
	}
}

func TestGroupsUnknownCategoriesIgnoreCase(t *testing.T) {
	c := Build([]RawReference{
		{PromptName: "a", Category: "Zebra"},
		{PromptName: "b", Category: "apple"},
		{PromptName: "c", Category: "Mango"},
		{PromptName: "d", Category: "mango"},
	})

	var got []string
	for _, g := range c.Groups() {
		got = append(got, g.Category)
	}
	want := []string{"apple", "Mango", "mango", "Zebra"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestReferencesFromPayload(t *testing.T) {
	v := payload.Decode([]byte(`{"data":[
		{"id":"rec1","prompt_name":"Neon Dragon — A fierce dragon","brand_name":"Acme","prompt_category":"","category":"Character","prompt_type":"Style"},
		{"id":"rec2","prompt_name":"Plain","brand_name":"Acme","prompt_type":"Style"},
		{"id":"rec3","prompt_name":"Bare","brand_name":"Acme"}
	]}`))

	refs := ReferencesFromPayload(v)
	if len(refs) != 3 {
		t.Fatalf("Expected 3 references, got %d", len(refs))
	}
	if refs[0].Category != "Character" {
		t.Errorf("Expected category synonym to win over prompt_type, got %q", refs[0].Category)
	}
	if refs[1].Category != "Style" {
		t.Errorf("Expected prompt_type fallback, got %q", refs[1].Category)
	}

	c := Build(refs)
	opt, _ := c.Option("Bare")
	if opt.Category != FallbackCategory {
		t.Errorf("Expected fallback category, got %q", opt.Category)
	}
}

func TestBuildGarbage(t *testing.T) {
	for _, in := range []any{nil, map[string]any{}, "not json-shaped", []any{1.0, nil}} {
		c := Build(ReferencesFromPayload(in))
		if c.Len() != 0 {
			t.Errorf("Expected no options for %#v, got %d", in, c.Len())
		}
		if c.RecordID("x", "y") != "" {
			t.Errorf("Expected empty record id for %#v", in)
		}
		_ = c.Groups()
	}

	var nilCatalog *Catalog
	if nilCatalog.RecordID("x", "y") != "" || nilCatalog.Groups() != nil || nilCatalog.Len() != 0 {
		t.Error("Expected nil catalog to behave as empty")
	}
}

func TestFilterBrand(t *testing.T) {
	refs := []RawReference{
		{ID: "1", BrandName: "Acme"},
		{ID: "2", BrandName: " Acme "},
		{ID: "3", BrandName: "Globex"},
	}
	if got := FilterBrand(refs, "Acme"); len(got) != 2 {
		t.Errorf("Expected 2 Acme rows, got %d", len(got))
	}
	if got := FilterBrand(refs, ""); len(got) != 3 {
		t.Errorf("Expected all rows for empty brand, got %d", len(got))
	}
}
