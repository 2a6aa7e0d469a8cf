package domain

import (
	"fmt"
	"math"
	"time"
)

// Creator identifies the wallet and display identity behind a wearable.
type Creator struct {
	Address  string
	Name     string
	Avatar   string
	Verified bool
}

// Images holds preview asset locations. Model3D is a GLB/GLTF object key or path.
type Images struct {
	Thumbnail string
	Preview   []string
	Model3D   string
}

// Metadata carries token and edition information.
type Metadata struct {
	TokenID         string
	ContractAddress string
	Rarity          Rarity
	Edition         int
	TotalSupply     int
}

// Wearable is a single digital-wearable catalog entry. Records are never
// mutated after creation; the engine only reads them.
type Wearable struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Currency    Currency
	Creator     Creator
	Category    Category
	Platforms   []Platform
	Images      Images
	Metadata    Metadata
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the catalog invariants of a wearable record.
func (w *Wearable) Validate() error {
	if w == nil {
		return fmt.Errorf("%w: wearable is nil", ErrInvalidWearable)
	}
	if w.ID == "" {
		return fmt.Errorf("%w: id cannot be empty", ErrInvalidWearable)
	}
	if math.IsNaN(w.Price) || w.Price < 0 {
		return fmt.Errorf("%w: wearable %s has negative price", ErrInvalidWearable, w.ID)
	}
	if !w.Currency.IsValid() {
		return fmt.Errorf("%w: wearable %s has unknown currency '%s'", ErrInvalidWearable, w.ID, w.Currency)
	}
	if !w.Category.IsValid() {
		return fmt.Errorf("%w: wearable %s has unknown category '%s'", ErrInvalidWearable, w.ID, w.Category)
	}
	if len(w.Platforms) == 0 {
		return fmt.Errorf("%w: wearable %s has no platforms", ErrInvalidWearable, w.ID)
	}
	seen := make(map[Platform]struct{}, len(w.Platforms))
	for _, p := range w.Platforms {
		if !p.IsValid() {
			return fmt.Errorf("%w: wearable %s has unknown platform '%s'", ErrInvalidWearable, w.ID, p)
		}
		if _, dup := seen[p]; dup {
			return fmt.Errorf("%w: wearable %s lists platform '%s' twice", ErrInvalidWearable, w.ID, p)
		}
		seen[p] = struct{}{}
	}
	if !w.Metadata.Rarity.IsValid() {
		return fmt.Errorf("%w: wearable %s has unknown rarity '%s'", ErrInvalidWearable, w.ID, w.Metadata.Rarity)
	}
	if w.Metadata.TotalSupply < 1 {
		return fmt.Errorf("%w: wearable %s total supply must be positive", ErrInvalidWearable, w.ID)
	}
	if w.Metadata.Edition < 1 || w.Metadata.Edition > w.Metadata.TotalSupply {
		return fmt.Errorf("%w: wearable %s edition %d out of range 1..%d",
			ErrInvalidWearable, w.ID, w.Metadata.Edition, w.Metadata.TotalSupply)
	}
	return nil
}

// SupportsPlatform reports whether p is one of the wearable's platforms.
func (w *Wearable) SupportsPlatform(p Platform) bool {
	for _, wp := range w.Platforms {
		if wp == p {
			return true
		}
	}
	return false
}

// IsOwnedBy reports whether account is the wearable's creator. An empty
// account owns nothing.
func (w *Wearable) IsOwnedBy(account string) bool {
	return account != "" && w.Creator.Address == account
}

// Clone returns a deep copy of w.
func (w *Wearable) Clone() *Wearable {
	if w == nil {
		return nil
	}
	c := *w
	c.Platforms = append([]Platform(nil), w.Platforms...)
	c.Images.Preview = append([]string(nil), w.Images.Preview...)
	c.Tags = append([]string(nil), w.Tags...)
	return &c
}
