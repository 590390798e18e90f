package catalog

import (
	"context"
	"strings"
)

// Source fetches the raw reference rows for a brand.
type Source interface {
	References(ctx context.Context, brand string) ([]RawReference, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, brand string) ([]RawReference, error)

// References calls f.
func (f SourceFunc) References(ctx context.Context, brand string) ([]RawReference, error) {
	return f(ctx, brand)
}

// FilterBrand keeps rows whose trimmed brand equals brand. An empty brand
// keeps everything.
func FilterBrand(records []RawReference, brand string) []RawReference {
	brand = strings.TrimSpace(brand)
	if brand == "" {
		return records
	}
	out := make([]RawReference, 0, len(records))
	for _, r := range records {
		if strings.TrimSpace(r.BrandName) == brand {
			out = append(out, r)
		}
	}
	return out
}
