package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/zora-digital-fashion/marketplace/internal/wearable/domain"
)

// PurchaseRepository is an append-only purchase ledger.
type PurchaseRepository struct {
	mu         sync.RWMutex
	purchases  []domain.Purchase
	ids        map[string]struct{}
	byWearable map[string]int64
}

func NewPurchaseRepository() *PurchaseRepository {
	return &PurchaseRepository{
		ids:        make(map[string]struct{}),
		byWearable: make(map[string]int64),
	}
}

func (r *PurchaseRepository) Create(ctx context.Context, p *domain.Purchase) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p == nil || p.ID == "" {
		return fmt.Errorf("%w: purchase id cannot be empty", domain.ErrInvalidInput)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.ids[p.ID]; dup {
		return fmt.Errorf("%w: duplicate purchase id '%s'", domain.ErrRepository, p.ID)
	}
	r.ids[p.ID] = struct{}{}
	r.byWearable[p.WearableID]++
	r.purchases = append(r.purchases, *p)
	return nil
}

func (r *PurchaseRepository) CountByWearableID(ctx context.Context, wearableID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byWearable[wearableID], nil
}

// FindByBuyer returns the buyer's purchases newest first.
func (r *PurchaseRepository) FindByBuyer(ctx context.Context, buyer string) ([]*domain.Purchase, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]*domain.Purchase, 0)
	for i := range r.purchases {
		if r.purchases[i].Buyer == buyer {
			p := r.purchases[i]
			out = append(out, &p)
		}
	}
	r.mu.RUnlock()

	slices.SortStableFunc(out, func(a, b *domain.Purchase) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return out, nil
}
