package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validWearable() *Wearable {
	return &Wearable{
		ID:        "1",
		Name:      "Cyberpunk Jacket",
		Price:     0.1,
		Currency:  CurrencyETH,
		Creator:   Creator{Address: "0x1234...5678", Name: "DigitalDesigner", Verified: true},
		Category:  CategoryClothing,
		Platforms: []Platform{PlatformZoom, PlatformTeams},
		Metadata:  Metadata{Rarity: RarityEpic, Edition: 1, TotalSupply: 100},
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestWearable_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(w *Wearable)
	}{
		{"empty id", func(w *Wearable) { w.ID = "" }},
		{"negative price", func(w *Wearable) { w.Price = -1 }},
		{"nan price", func(w *Wearable) { w.Price = math.NaN() }},
		{"unknown currency", func(w *Wearable) { w.Currency = "BTC" }},
		{"unknown category", func(w *Wearable) { w.Category = "Shoes" }},
		{"no platforms", func(w *Wearable) { w.Platforms = nil }},
		{"unknown platform", func(w *Wearable) { w.Platforms = []Platform{"MySpace"} }},
		{"duplicate platform", func(w *Wearable) { w.Platforms = []Platform{PlatformZoom, PlatformZoom} }},
		{"unknown rarity", func(w *Wearable) { w.Metadata.Rarity = "Mythic" }},
		{"zero supply", func(w *Wearable) { w.Metadata.TotalSupply = 0 }},
		{"edition above supply", func(w *Wearable) { w.Metadata.Edition = 101 }},
		{"zero edition", func(w *Wearable) { w.Metadata.Edition = 0 }},
	}

	require.NoError(t, validWearable().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := validWearable()
			tt.mutate(w)
			assert.ErrorIs(t, w.Validate(), ErrInvalidWearable)
		})
	}
}

func TestWearable_IsOwnedBy(t *testing.T) {
	w := validWearable()
	assert.True(t, w.IsOwnedBy("0x1234...5678"))
	assert.False(t, w.IsOwnedBy("0x8765...4321"))
	assert.False(t, w.IsOwnedBy(""))
}

func TestRarity_Rank(t *testing.T) {
	for i, r := range Rarities {
		assert.Equal(t, i, r.Rank())
	}
	assert.Equal(t, -1, Rarity("Mythic").Rank())
}

func TestFilter_Validate(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	badCategory := Category("Shoes")
	badPlatform := Platform("MySpace")

	tests := []struct {
		name    string
		filter  Filter
		wantErr bool
	}{
		{"empty", Filter{}, false},
		{"valid range", Filter{PriceRange: &PriceRange{Min: f(0.06), Max: f(0.2)}}, false},
		{"only max", Filter{PriceRange: &PriceRange{Max: f(0.2)}}, false},
		{"equal bounds", Filter{PriceRange: &PriceRange{Min: f(0.1), Max: f(0.1)}}, false},
		{"min above max", Filter{PriceRange: &PriceRange{Min: f(0.3), Max: f(0.2)}}, true},
		{"negative min", Filter{PriceRange: &PriceRange{Min: f(-1)}}, true},
		{"nan max", Filter{PriceRange: &PriceRange{Max: f(math.NaN())}}, true},
		{"unknown category", Filter{Category: &badCategory}, true},
		{"unknown platform", Filter{Platform: &badPlatform}, true},
		{"unknown rarity", Filter{Rarities: []Rarity{RarityEpic, "Mythic"}}, true},
		{"unknown sort", Filter{SortBy: "popular"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.filter.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFilter)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPageRequest_Normalize(t *testing.T) {
	assert.Equal(t, PageRequest{Page: 1, Limit: DefaultPageLimit}, PageRequest{}.Normalize())
	assert.Equal(t, PageRequest{Page: 1, Limit: DefaultPageLimit}, PageRequest{Page: -3, Limit: -1}.Normalize())
	assert.Equal(t, PageRequest{Page: 2, Limit: MaxPageLimit}, PageRequest{Page: 2, Limit: 5000}.Normalize())
	assert.Equal(t, PageRequest{Page: 4, Limit: 2}, PageRequest{Page: 4, Limit: 2}.Normalize())
}

func TestParseHelpers(t *testing.T) {
	c, err := ParseCategory("Glasses")
	require.NoError(t, err)
	assert.Equal(t, CategoryGlasses, c)

	_, err = ParseCategory("glasses")
	assert.ErrorIs(t, err, ErrInvalidFilter)

	_, err = ParsePlatform("Zoom")
	assert.NoError(t, err)
	_, err = ParseRarity("Legendary")
	assert.NoError(t, err)
	_, err = ParseSortKey("popular")
	assert.ErrorIs(t, err, ErrInvalidFilter)
}
