// Package memory keeps the catalog and purchase ledger in process memory.
// It backs the default CATALOG_BACKEND=memory mode and the usecase tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/zora-digital-fashion/marketplace/internal/wearable/domain"
)

// CatalogRepository serves an in-memory catalog in insertion order.
type CatalogRepository struct {
	mu    sync.RWMutex
	items []*domain.Wearable
	byID  map[string]int
}

// NewCatalogRepository validates and stores items. Duplicate ids are rejected.
func NewCatalogRepository(items []*domain.Wearable) (*CatalogRepository, error) {
	r := &CatalogRepository{byID: make(map[string]int, len(items))}
	for _, w := range items {
		if err := r.add(w); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add appends a validated wearable to the end of the catalog.
func (r *CatalogRepository) Add(_ context.Context, w *domain.Wearable) error {
	return r.add(w)
}

func (r *CatalogRepository) add(w *domain.Wearable) error {
	if err := w.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[w.ID]; exists {
		return fmt.Errorf("%w: duplicate wearable id '%s'", domain.ErrInvalidWearable, w.ID)
	}
	r.byID[w.ID] = len(r.items)
	r.items = append(r.items, w.Clone())
	return nil
}

// Snapshot returns deep copies, so callers can never reach the stored records.
func (r *CatalogRepository) Snapshot(ctx context.Context) ([]*domain.Wearable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Wearable, len(r.items))
	for i, w := range r.items {
		out[i] = w.Clone()
	}
	return out, nil
}

func (r *CatalogRepository) FindByID(ctx context.Context, id string) (*domain.Wearable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrWearableNotFound
	}
	return r.items[idx].Clone(), nil
}
