// Package engine holds the pure catalog query pipeline: filter, sort and
// paginate over a snapshot the caller owns. Nothing here performs I/O or
// mutates its inputs.
package engine

import (
	"strings"

	"github.com/zora-digital-fashion/marketplace/internal/wearable/domain"
)

// predicate reports whether a wearable passes one filter clause.
type predicate func(w *domain.Wearable) bool

// Apply returns the wearables of catalog that satisfy every clause of f, in
// the order f.SortBy demands. The result is always a fresh slice, so callers
// may reorder it without touching the snapshot. The filter is assumed to be
// validated by the caller.
func Apply(catalog []*domain.Wearable, f domain.Filter) []*domain.Wearable {
	preds := compile(f)

	out := make([]*domain.Wearable, 0, len(catalog))
	for _, w := range catalog {
		if matchAll(w, preds) {
			out = append(out, w)
		}
	}
	sortWearables(out, f.SortBy)
	return out
}

// Match reports whether w satisfies every clause of f, ignoring sorting.
func Match(w *domain.Wearable, f domain.Filter) bool {
	return matchAll(w, compile(f))
}

func matchAll(w *domain.Wearable, preds []predicate) bool {
	for _, p := range preds {
		if !p(w) {
			return false
		}
	}
	return true
}

func compile(f domain.Filter) []predicate {
	var preds []predicate

	if f.Category != nil {
		category := *f.Category
		preds = append(preds, func(w *domain.Wearable) bool {
			return w.Category == category
		})
	}
	if f.Platform != nil {
		platform := *f.Platform
		preds = append(preds, func(w *domain.Wearable) bool {
			return w.SupportsPlatform(platform)
		})
	}
	if f.PriceRange != nil {
		lo, hi := f.PriceRange.Bounds()
		preds = append(preds, func(w *domain.Wearable) bool {
			return w.Price >= lo && w.Price <= hi
		})
	}
	if len(f.Rarities) > 0 {
		set := make(map[domain.Rarity]struct{}, len(f.Rarities))
		for _, r := range f.Rarities {
			set[r] = struct{}{}
		}
		preds = append(preds, func(w *domain.Wearable) bool {
			_, ok := set[w.Metadata.Rarity]
			return ok
		})
	}
	if f.Creator != "" {
		creator := f.Creator
		preds = append(preds, func(w *domain.Wearable) bool {
			return w.Creator.Address == creator
		})
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		preds = append(preds, func(w *domain.Wearable) bool {
			return matchesText(w, q)
		})
	}
	return preds
}

// matchesText expects q already lower-cased.
func matchesText(w *domain.Wearable, q string) bool {
	if strings.Contains(strings.ToLower(w.Name), q) ||
		strings.Contains(strings.ToLower(w.Description), q) {
		return true
	}
	for _, tag := range w.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
