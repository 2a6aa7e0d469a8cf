package domain

import (
	"fmt"
	"math"
)

const (
	DefaultPageLimit = 12
	MaxPageLimit     = 100
)

// PriceRange bounds the price inclusively. A nil Min means 0, a nil Max means +Inf.
type PriceRange struct {
	Min *float64
	Max *float64
}

// Bounds returns the effective inclusive bounds.
func (r PriceRange) Bounds() (float64, float64) {
	lo, hi := 0.0, math.Inf(1)
	if r.Min != nil {
		lo = *r.Min
	}
	if r.Max != nil {
		hi = *r.Max
	}
	return lo, hi
}

// Filter is the typed query a caller applies to a catalog snapshot.
// Every field is optional; the zero Filter matches everything.
type Filter struct {
	Category   *Category
	Platform   *Platform
	PriceRange *PriceRange
	Rarities   []Rarity // set semantics, not a range
	Creator    string   // exact creator address
	SortBy     SortKey
	Search     string // case-insensitive substring over name, description and tags
}

// Validate rejects values outside the recognized enumerations and malformed bounds.
func (f Filter) Validate() error {
	if f.Category != nil && !f.Category.IsValid() {
		return fmt.Errorf("%w: unknown category '%s'", ErrInvalidFilter, *f.Category)
	}
	if f.Platform != nil && !f.Platform.IsValid() {
		return fmt.Errorf("%w: unknown platform '%s'", ErrInvalidFilter, *f.Platform)
	}
	for _, r := range f.Rarities {
		if !r.IsValid() {
			return fmt.Errorf("%w: unknown rarity '%s'", ErrInvalidFilter, r)
		}
	}
	if !f.SortBy.IsValid() {
		return fmt.Errorf("%w: unknown sortBy '%s'", ErrInvalidFilter, f.SortBy)
	}
	if f.PriceRange != nil {
		if f.PriceRange.Min != nil {
			if m := *f.PriceRange.Min; math.IsNaN(m) || m < 0 {
				return fmt.Errorf("%w: minPrice must be a non-negative number", ErrInvalidFilter)
			}
		}
		if f.PriceRange.Max != nil {
			if m := *f.PriceRange.Max; math.IsNaN(m) || m < 0 {
				return fmt.Errorf("%w: maxPrice must be a non-negative number", ErrInvalidFilter)
			}
		}
		if lo, hi := f.PriceRange.Bounds(); lo > hi {
			return fmt.Errorf("%w: minPrice %g is greater than maxPrice %g", ErrInvalidFilter, lo, hi)
		}
	}
	return nil
}

// PageRequest selects a 1-based page of a result.
type PageRequest struct {
	Page  int
	Limit int
}

// Normalize applies the pagination defaults: page <= 0 becomes 1, limit <= 0
// becomes DefaultPageLimit and limits above MaxPageLimit are clamped.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	} else if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

// Page is one slice of an ordered result plus its metadata.
type Page struct {
	Items      []*Wearable
	Page       int
	Limit      int
	Total      int
	TotalPages int
}
