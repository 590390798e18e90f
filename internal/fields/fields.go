// Package fields resolves canonical field names against the inconsistent
// spellings used by the workflow backend and the record store.
package fields

import (
	"strings"

	"github.com/brandstudio/promptdesk/internal/payload"
)

// nestedKey is the one level of nesting some workflows add around a record.
const nestedKey = "data"

// Field maps a canonical name to the upstream names accepted for it, in
// precedence order.
type Field struct {
	Name     string
	Synonyms []string
}

// Table is a declarative list of canonical fields.
type Table []Field

// Lookup returns the synonyms registered for a canonical name. Unknown names
// resolve against themselves.
func (t Table) Lookup(name string) []string {
	for _, f := range t {
		if f.Name == name {
			return f.Synonyms
		}
	}
	return []string{name}
}

// Get resolves a canonical field of rec using the table.
func (t Table) Get(rec payload.Record, name string) string {
	return Resolve(rec, t.Lookup(name))
}

// Resolve returns the first trimmed, non-empty string found under any of the
// synonyms. Top-level keys are tried in order before the same keys nested
// under "data". It returns "" when nothing matches.
func Resolve(rec payload.Record, synonyms []string) string {
	if rec == nil {
		return ""
	}
	if v, ok := firstString(rec, synonyms); ok {
		return v
	}
	if nested, ok := rec[nestedKey].(map[string]any); ok {
		if v, ok := firstString(nested, synonyms); ok {
			return v
		}
	}
	return ""
}

func firstString(m map[string]any, keys []string) (string, bool) {
	for _, key := range keys {
		s, ok := m[key].(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			return s, true
		}
	}
	return "", false
}
