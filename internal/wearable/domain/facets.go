package domain

// FacetCount is one selectable filter value and how many wearables carry it.
type FacetCount struct {
	Value string
	Count int
}

// Facets describes the filter sidebar over a catalog snapshot. Value lists
// follow the enumeration order, rarities ascending by rank.
type Facets struct {
	Categories []FacetCount
	Platforms  []FacetCount
	Rarities   []FacetCount
	SortKeys   []SortKey
	PriceMin   float64
	PriceMax   float64
	Total      int
}
