package engine

import (
	"cmp"
	"slices"

	"github.com/zora-digital-fashion/marketplace/internal/wearable/domain"
)

// sortWearables orders items in place. Every ordering is stable: equal keys
// keep their catalog order.
func sortWearables(items []*domain.Wearable, key domain.SortKey) {
	var less func(a, b *domain.Wearable) int

	switch key {
	case domain.SortPriceAsc:
		less = func(a, b *domain.Wearable) int { return cmp.Compare(a.Price, b.Price) }
	case domain.SortPriceDesc:
		less = func(a, b *domain.Wearable) int { return cmp.Compare(b.Price, a.Price) }
	case domain.SortNewest:
		less = func(a, b *domain.Wearable) int { return b.CreatedAt.Compare(a.CreatedAt) }
	case domain.SortRarity:
		less = func(a, b *domain.Wearable) int {
			return cmp.Compare(b.Metadata.Rarity.Rank(), a.Metadata.Rarity.Rank())
		}
	default:
		return
	}
	slices.SortStableFunc(items, less)
}
