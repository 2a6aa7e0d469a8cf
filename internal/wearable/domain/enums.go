package domain

import "fmt"

// --- Category Enum ---

// Category classifies a wearable. Matching is exact, there is no hierarchy.
type Category string

const (
	CategoryClothing    Category = "Clothing"
	CategoryAccessories Category = "Accessories"
	CategoryHats        Category = "Hats"
	CategoryGlasses     Category = "Glasses"
	CategoryMasks       Category = "Masks"
	CategoryBackgrounds Category = "Backgrounds"
	CategoryEffects     Category = "Effects"
	CategoryFullOutfit  Category = "Full_Outfit"
)

// Categories lists every category in storefront display order.
var Categories = []Category{
	CategoryClothing, CategoryAccessories, CategoryHats, CategoryGlasses,
	CategoryMasks, CategoryBackgrounds, CategoryEffects, CategoryFullOutfit,
}

// IsValid checks if the Category is one of the defined constants.
func (c Category) IsValid() bool {
	switch c {
	case CategoryClothing, CategoryAccessories, CategoryHats, CategoryGlasses,
		CategoryMasks, CategoryBackgrounds, CategoryEffects, CategoryFullOutfit:
		return true
	}
	return false
}

// ParseCategory converts a raw query value into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("%w: unknown category '%s'", ErrInvalidFilter, s)
	}
	return c, nil
}

// --- Platform Enum ---

// Platform is a video/social platform a wearable can be used on.
type Platform string

const (
	PlatformZoom      Platform = "Zoom"
	PlatformInstagram Platform = "Instagram"
	PlatformSnapchat  Platform = "Snapchat"
	PlatformTikTok    Platform = "TikTok"
	PlatformDiscord   Platform = "Discord"
	PlatformTwitch    Platform = "Twitch"
	PlatformTeams     Platform = "Teams"
)

var Platforms = []Platform{
	PlatformZoom, PlatformInstagram, PlatformSnapchat, PlatformTikTok,
	PlatformDiscord, PlatformTeams, PlatformTwitch,
}

func (p Platform) IsValid() bool {
	switch p {
	case PlatformZoom, PlatformInstagram, PlatformSnapchat, PlatformTikTok,
		PlatformDiscord, PlatformTwitch, PlatformTeams:
		return true
	}
	return false
}

func ParsePlatform(s string) (Platform, error) {
	p := Platform(s)
	if !p.IsValid() {
		return "", fmt.Errorf("%w: unknown platform '%s'", ErrInvalidFilter, s)
	}
	return p, nil
}

// --- Rarity Enum ---

// Rarity is an ordered tier: Common < Rare < Epic < Legendary.
type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityRare      Rarity = "Rare"
	RarityEpic      Rarity = "Epic"
	RarityLegendary Rarity = "Legendary"
)

// Rarities lists every tier in ascending rank.
var Rarities = []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}

// Rank returns the position of the tier in the rarity ordering, or -1 if unknown.
func (r Rarity) Rank() int {
	switch r {
	case RarityCommon:
		return 0
	case RarityRare:
		return 1
	case RarityEpic:
		return 2
	case RarityLegendary:
		return 3
	}
	return -1
}

func (r Rarity) IsValid() bool {
	return r.Rank() >= 0
}

func ParseRarity(s string) (Rarity, error) {
	r := Rarity(s)
	if !r.IsValid() {
		return "", fmt.Errorf("%w: unknown rarity '%s'", ErrInvalidFilter, s)
	}
	return r, nil
}

// --- Currency Enum ---

type Currency string

const (
	CurrencyETH   Currency = "ETH"
	CurrencyMATIC Currency = "MATIC"
	CurrencyUSD   Currency = "USD"
)

func (c Currency) IsValid() bool {
	switch c {
	case CurrencyETH, CurrencyMATIC, CurrencyUSD:
		return true
	}
	return false
}

// --- Sort Keys ---

// SortKey selects the result ordering. The zero value keeps catalog order.
type SortKey string

const (
	SortNone      SortKey = ""
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortNewest    SortKey = "newest"
	SortRarity    SortKey = "rarity"
)

// SortKeys lists the recognized non-empty sort keys.
var SortKeys = []SortKey{SortPriceAsc, SortPriceDesc, SortNewest, SortRarity}

func (k SortKey) IsValid() bool {
	switch k {
	case SortNone, SortPriceAsc, SortPriceDesc, SortNewest, SortRarity:
		return true
	}
	return false
}

func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(s)
	if !k.IsValid() {
		return "", fmt.Errorf("%w: unknown sortBy '%s'", ErrInvalidFilter, s)
	}
	return k, nil
}
