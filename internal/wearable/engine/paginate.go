package engine

import "github.com/zora-digital-fashion/marketplace/internal/wearable/domain"

// Paginate cuts one page out of an ordered result. The request is normalized
// first, see domain.PageRequest.Normalize. A page past the end yields an empty,
// non-nil Items slice with the real totals.
func Paginate(items []*domain.Wearable, req domain.PageRequest) domain.Page {
	req = req.Normalize()
	total := len(items)

	page := domain.Page{
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: (total + req.Limit - 1) / req.Limit,
	}

	if req.Page > page.TotalPages {
		page.Items = []*domain.Wearable{}
		return page
	}
	start := (req.Page - 1) * req.Limit
	end := min(start+req.Limit, total)
	page.Items = items[start:end:end]
	return page
}
