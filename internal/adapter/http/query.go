package http

import (
	"fmt"
	"math"
	"net/url"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/zora-digital-fashion/marketplace/internal/wearable/domain"
)

// Recognized query keys for GET /api/wearables.
const (
	qCategory = "category"
	qPlatform = "platform"
	qCreator  = "creator"
	qSearch   = "search"
	qSortBy   = "sortBy"
	qPage     = "page"
	qLimit    = "limit"
	qMinPrice = "minPrice"
	qMaxPrice = "maxPrice"
	qRarity   = "rarity"
)

var knownQueryKeys = map[string]bool{
	qCategory: true, qPlatform: true, qCreator: true, qSearch: true, qSortBy: true,
	qPage: true, qLimit: true, qMinPrice: true, qMaxPrice: true, qRarity: true,
}

// ParseSearchQuery turns the raw query string into a validated filter and page
// request. Any malformed or unrecognized input is an ErrInvalidFilter.
func ParseSearchQuery(values url.Values) (domain.Filter, domain.PageRequest, error) {
	var (
		f   domain.Filter
		req domain.PageRequest
	)

	if unknown := unknownKeys(values); len(unknown) > 0 {
		return f, req, fmt.Errorf("%w: unknown query parameter(s): %s", domain.ErrInvalidFilter, strings.Join(unknown, ", "))
	}

	for key, vals := range values {
		if key != qRarity && len(vals) > 1 {
			return f, req, fmt.Errorf("%w: query parameter '%s' given more than once", domain.ErrInvalidFilter, key)
		}
	}

	if v := single(values, qCategory); v != "" {
		c, err := domain.ParseCategory(v)
		if err != nil {
			return f, req, err
		}
		f.Category = &c
	}
	if v := single(values, qPlatform); v != "" {
		p, err := domain.ParsePlatform(v)
		if err != nil {
			return f, req, err
		}
		f.Platform = &p
	}
	if v := single(values, qSortBy); v != "" {
		k, err := domain.ParseSortKey(v)
		if err != nil {
			return f, req, err
		}
		f.SortBy = k
	}
	f.Creator = single(values, qCreator)
	f.Search = single(values, qSearch)

	rarities, err := parseRarities(values[qRarity])
	if err != nil {
		return f, req, err
	}
	f.Rarities = rarities

	minPrice, err := parsePrice(values, qMinPrice)
	if err != nil {
		return f, req, err
	}
	maxPrice, err := parsePrice(values, qMaxPrice)
	if err != nil {
		return f, req, err
	}
	if minPrice != nil || maxPrice != nil {
		f.PriceRange = &domain.PriceRange{Min: minPrice, Max: maxPrice}
	}

	if req.Page, err = parseInt(values, qPage); err != nil {
		return f, req, err
	}
	if req.Limit, err = parseInt(values, qLimit); err != nil {
		return f, req, err
	}

	if err := f.Validate(); err != nil {
		return f, req, err
	}
	return f, req.Normalize(), nil
}

func unknownKeys(values url.Values) []string {
	var unknown []string
	for key := range values {
		if !knownQueryKeys[key] {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	return unknown
}

func single(values url.Values, key string) string {
	return strings.TrimSpace(values.Get(key))
}

// parseRarities accepts repeated keys and comma separated lists. Duplicates collapse.
func parseRarities(raw []string) ([]domain.Rarity, error) {
	var out []domain.Rarity
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			r, err := domain.ParseRarity(part)
			if err != nil {
				return nil, err
			}
			if !slices.Contains(out, r) {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

func parsePrice(values url.Values, key string) (*float64, error) {
	v := single(values, key)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, fmt.Errorf("%w: %s must be a number, got '%s'", domain.ErrInvalidFilter, key, v)
	}
	return &n, nil
}

// parseInt returns 0 for an absent value so Normalize applies the default.
func parseInt(values url.Values, key string) (int, error) {
	v := single(values, key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got '%s'", domain.ErrInvalidFilter, key, v)
	}
	return n, nil
}
