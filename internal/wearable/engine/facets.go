package engine

import "github.com/zora-digital-fashion/marketplace/internal/wearable/domain"

// BuildFacets counts every enumerated category, platform and rarity over
// catalog. Values without wearables are still listed with a zero count.
// PriceMin and PriceMax are zero for an empty catalog.
func BuildFacets(catalog []*domain.Wearable) domain.Facets {
	categories := make(map[domain.Category]int, len(domain.Categories))
	platforms := make(map[domain.Platform]int, len(domain.Platforms))
	rarities := make(map[domain.Rarity]int, len(domain.Rarities))

	facets := domain.Facets{
		SortKeys: append([]domain.SortKey(nil), domain.SortKeys...),
		Total:    len(catalog),
	}
	for i, w := range catalog {
		categories[w.Category]++
		for _, p := range w.Platforms {
			platforms[p]++
		}
		rarities[w.Metadata.Rarity]++

		if i == 0 || w.Price < facets.PriceMin {
			facets.PriceMin = w.Price
		}
		if i == 0 || w.Price > facets.PriceMax {
			facets.PriceMax = w.Price
		}
	}

	for _, c := range domain.Categories {
		facets.Categories = append(facets.Categories, domain.FacetCount{Value: string(c), Count: categories[c]})
	}
	for _, p := range domain.Platforms {
		facets.Platforms = append(facets.Platforms, domain.FacetCount{Value: string(p), Count: platforms[p]})
	}
	for _, r := range domain.Rarities {
		facets.Rarities = append(facets.Rarities, domain.FacetCount{Value: string(r), Count: rarities[r]})
	}
	return facets
}
