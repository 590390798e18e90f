package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/brandstudio/promptdesk/internal/catalog"
)

// Snapshot is one loaded catalog with the time its load finished.
type Snapshot struct {
	Brand    string
	Catalog  *catalog.Catalog
	LoadedAt time.Time
}

// CatalogStore keeps the latest catalog snapshot per brand. Loads replace a
// brand's snapshot wholesale; readers keep whatever snapshot they already
// hold until they ask again.
type CatalogStore struct {
	source    catalog.Source
	snapshots map[string]*Snapshot
	mu        sync.RWMutex
	group     singleflight.Group
	now       func() time.Time
}

func New(source catalog.Source) *CatalogStore {
	return &CatalogStore{
		source:    source,
		snapshots: make(map[string]*Snapshot),
		now:       time.Now,
	}
}

// Get returns the current snapshot for a brand, if one has been loaded.
func (s *CatalogStore) Get(brand string) (*Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, exists := s.snapshots[key(brand)]
	return snap, exists
}

// Set installs a snapshot built elsewhere.
func (s *CatalogStore) Set(brand string, c *catalog.Catalog) *Snapshot {
	snap := &Snapshot{Brand: strings.TrimSpace(brand), Catalog: c, LoadedAt: s.now()}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[key(brand)] = snap
	return snap
}

// Load fetches and rebuilds a brand's catalog. Concurrent loads of the same
// brand share one fetch; the caller's cancellation does not abort it for the
// others.
func (s *CatalogStore) Load(ctx context.Context, brand string) (*Snapshot, error) {
	k := key(brand)
	v, err, shared := s.group.Do(k, func() (interface{}, error) {
		start := s.now()
		refs, err := s.source.References(context.WithoutCancel(ctx), strings.TrimSpace(brand))
		if err != nil {
			return nil, fmt.Errorf("failed to fetch references for brand %q: %w", brand, err)
		}

		c := catalog.Build(catalog.FilterBrand(refs, brand))
		snap := s.Set(brand, c)
		slog.Info("Catalog loaded",
			"brand", brand,
			"rows", len(refs),
			"options", c.Len(),
			"duration", s.now().Sub(start))
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		slog.Debug("Catalog load shared with concurrent caller", "brand", brand)
	}
	return v.(*Snapshot), nil
}

// GetOrLoad returns the cached snapshot or loads one.
func (s *CatalogStore) GetOrLoad(ctx context.Context, brand string) (*Snapshot, error) {
	if snap, ok := s.Get(brand); ok {
		return snap, nil
	}
	return s.Load(ctx, brand)
}

// GetAll returns a copy of every loaded snapshot keyed by brand.
func (s *CatalogStore) GetAll() map[string]*Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]*Snapshot, len(s.snapshots))
	for k, v := range s.snapshots {
		result[k] = v
	}
	return result
}

// Delete drops a brand's snapshot so the next GetOrLoad refetches.
func (s *CatalogStore) Delete(brand string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, key(brand))
}

func key(brand string) string {
	return strings.TrimSpace(brand)
}
