// Package catalog turns reference rows from the record store into grouped
// selection options and resolves composite names back to store record ids.
package catalog

import (
	"sort"
	"strings"

	"github.com/brandstudio/promptdesk/internal/fields"
	"github.com/brandstudio/promptdesk/internal/payload"
)

// Separator splits a composite name into label and description.
const Separator = " — "

// FallbackCategory groups references with no category of any accepted name.
const FallbackCategory = "Other"

// PreferredCategories fixes the display order of known categories. Anything
// else sorts alphabetically after these, and FallbackCategory always comes
// last.
var PreferredCategories = []string{
	"Character",
	"Product",
	"Scene",
	"Style",
	"Background",
	"Logo",
	"Texture",
}

// RawReference is one reference row as read from the store.
type RawReference struct {
	ID         string `json:"id" yaml:"id"`
	PromptName string `json:"prompt_name" yaml:"prompt_name"`
	BrandName  string `json:"brand_name" yaml:"brand_name"`
	Category   string `json:"category,omitempty" yaml:"category,omitempty"`
}

// Option is a selectable catalog entry. ID is the full composite name, not the
// store row id, so a saved selection survives store changes.
type Option struct {
	ID          string `json:"id" yaml:"id"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description" yaml:"description"`
	Category    string `json:"category" yaml:"category"`
}

// Group is the options of one category, in load order.
type Group struct {
	Category string   `json:"category" yaml:"category"`
	Options  []Option `json:"options" yaml:"options"`
}

// Catalog is an immutable snapshot built from one load.
type Catalog struct {
	options []Option
	byID    map[string]int
	records []RawReference
}

// ReferenceFromRecord reads a flat store row using the reference synonym
// table. Category synonyms are resolved here; an empty category is left empty
// and defaulted by Build.
func ReferenceFromRecord(rec payload.Record) RawReference {
	return RawReference{
		ID:         fields.Reference.Get(rec, fields.RecordID),
		PromptName: fields.Reference.Get(rec, fields.PromptName),
		BrandName:  fields.Reference.Get(rec, fields.BrandName),
		Category:   fields.Reference.Get(rec, fields.Category),
	}
}

// ReferencesFromPayload unwraps a list-shaped payload into references.
func ReferencesFromPayload(v any) []RawReference {
	recs := payload.Records(v)
	out := make([]RawReference, 0, len(recs))
	for _, rec := range recs {
		out = append(out, ReferenceFromRecord(rec))
	}
	return out
}

// SplitCompositeName splits "<label> — <description>" on the first separator.
func SplitCompositeName(name string) (label, description string) {
	parts := strings.Split(name, Separator)
	label = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		description = strings.TrimSpace(strings.Join(parts[1:], Separator))
	}
	return label, description
}

// Build rebuilds a catalog from scratch. Rows without a composite name are
// skipped. When two rows share a composite name the first option is kept;
// RecordID still sees every row.
func Build(records []RawReference) *Catalog {
	c := &Catalog{
		options: make([]Option, 0, len(records)),
		byID:    make(map[string]int, len(records)),
		records: make([]RawReference, len(records)),
	}
	copy(c.records, records)

	for _, r := range records {
		name := strings.TrimSpace(r.PromptName)
		if name == "" {
			continue
		}
		if _, seen := c.byID[name]; seen {
			continue
		}

		label, description := SplitCompositeName(name)
		category := strings.TrimSpace(r.Category)
		if category == "" {
			category = FallbackCategory
		}

		c.byID[name] = len(c.options)
		c.options = append(c.options, Option{
			ID:          name,
			Label:       label,
			Description: description,
			Category:    category,
		})
	}

	return c
}

// Options returns every option in load order.
func (c *Catalog) Options() []Option {
	if c == nil {
		return nil
	}
	out := make([]Option, len(c.options))
	copy(out, c.options)
	return out
}

// Len reports the number of options.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.options)
}

// Option looks up an option by its id (the composite name).
func (c *Catalog) Option(id string) (Option, bool) {
	if c == nil {
		return Option{}, false
	}
	i, ok := c.byID[strings.TrimSpace(id)]
	if !ok {
		return Option{}, false
	}
	return c.options[i], true
}

// RecordID returns the store id of the first row whose trimmed composite name
// and brand match exactly, or "" when none does. Duplicate rows are not
// reported.
func (c *Catalog) RecordID(name, brand string) string {
	if c == nil {
		return ""
	}
	name = strings.TrimSpace(name)
	brand = strings.TrimSpace(brand)
	if name == "" {
		return ""
	}
	for _, r := range c.records {
		if strings.TrimSpace(r.PromptName) == name && strings.TrimSpace(r.BrandName) == brand {
			return r.ID
		}
	}
	return ""
}

// Groups returns options grouped by category in display order.
func (c *Catalog) Groups() []Group {
	if c == nil {
		return nil
	}

	index := make(map[string]int)
	var groups []Group
	for _, opt := range c.options {
		category := groupCategory(opt.Category)
		i, ok := index[category]
		if !ok {
			i = len(groups)
			index[category] = i
			groups = append(groups, Group{Category: category})
		}
		groups[i].Options = append(groups[i].Options, opt)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		ri, rj := categoryRank(groups[i].Category), categoryRank(groups[j].Category)
		if ri != rj {
			return ri < rj
		}
		li, lj := strings.ToLower(groups[i].Category), strings.ToLower(groups[j].Category)
		if li != lj {
			return li < lj
		}
		return groups[i].Category < groups[j].Category
	})
	return groups
}

// groupCategory folds any casing of a preferred category to its preferred
// spelling so "character" and "Character" share one group.
func groupCategory(category string) string {
	for _, known := range PreferredCategories {
		if strings.EqualFold(known, category) {
			return known
		}
	}
	return category
}

// categoryRank orders preferred categories by position, then unknown ones,
// then the fallback.
func categoryRank(category string) int {
	if category == FallbackCategory {
		return len(PreferredCategories) + 1
	}
	for i, known := range PreferredCategories {
		if strings.EqualFold(known, category) {
			return i
		}
	}
	return len(PreferredCategories)
}
