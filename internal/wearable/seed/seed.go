// Package seed provides the storefront's launch catalog.
package seed

import (
	"fmt"
	"time"

	"github.com/zora-digital-fashion/marketplace/internal/wearable/domain"
)

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

// Wearables returns a fresh copy of the launch catalog in catalog order.
func Wearables() []*domain.Wearable {
	return []*domain.Wearable{
		{
			ID:          "1",
			Name:        "Cyberpunk Jacket",
			Description: "Futuristic neon jacket perfect for virtual meetings",
			Price:       0.1,
			Currency:    domain.CurrencyETH,
			Creator: domain.Creator{
				Address:  "0x1234...5678",
				Name:     "DigitalDesigner",
				Verified: true,
			},
			Category:  domain.CategoryClothing,
			Platforms: []domain.Platform{domain.PlatformZoom, domain.PlatformTeams, domain.PlatformDiscord},
			Images: domain.Images{
				Thumbnail: "/wearables/jacket1-thumb.jpg",
				Preview:   []string{"/wearables/jacket1-1.jpg", "/wearables/jacket1-2.jpg"},
				Model3D:   "/models/jacket1.glb",
			},
			Metadata: domain.Metadata{
				Rarity:      domain.RarityEpic,
				Edition:     1,
				TotalSupply: 100,
			},
			Tags:      []string{"cyberpunk", "neon", "jacket", "business"},
			CreatedAt: day(1),
			UpdatedAt: day(1),
		},
		{
			ID:          "2",
			Name:        "AR Sunglasses",
			Description: "Cool AR sunglasses for Instagram and Snapchat filters",
			Price:       0.05,
			Currency:    domain.CurrencyETH,
			Creator: domain.Creator{
				Address:  "0x8765...4321",
				Name:     "ARFashion",
				Verified: true,
			},
			Category:  domain.CategoryGlasses,
			Platforms: []domain.Platform{domain.PlatformInstagram, domain.PlatformSnapchat, domain.PlatformTikTok},
			Images: domain.Images{
				Thumbnail: "/wearables/glasses1-thumb.jpg",
				Preview:   []string{"/wearables/glasses1-1.jpg"},
				Model3D:   "/models/glasses1.glb",
			},
			Metadata: domain.Metadata{
				Rarity:      domain.RarityRare,
				Edition:     5,
				TotalSupply: 500,
			},
			Tags:      []string{"sunglasses", "AR", "social", "cool"},
			CreatedAt: day(2),
			UpdatedAt: day(2),
		},
		{
			ID:          "3",
			Name:        "Holographic Mask",
			Description: "Shimmering holographic face mask for all platforms",
			Price:       0.15,
			Currency:    domain.CurrencyETH,
			Creator: domain.Creator{
				Address:  "0x9999...1111",
				Name:     "HoloDesigns",
				Verified: false,
			},
			Category: domain.CategoryMasks,
			Platforms: []domain.Platform{
				domain.PlatformZoom, domain.PlatformInstagram, domain.PlatformSnapchat,
				domain.PlatformTikTok, domain.PlatformDiscord,
			},
			Images: domain.Images{
				Thumbnail: "/wearables/mask1-thumb.jpg",
				Preview:   []string{"/wearables/mask1-1.jpg", "/wearables/mask1-2.jpg"},
				Model3D:   "/models/mask1.glb",
			},
			Metadata: domain.Metadata{
				Rarity:      domain.RarityLegendary,
				Edition:     1,
				TotalSupply: 50,
			},
			Tags:      []string{"mask", "holographic", "premium", "universal"},
			CreatedAt: day(3),
			UpdatedAt: day(3),
		},
	}
}

// Validated returns Wearables after checking every record.
func Validated() ([]*domain.Wearable, error) {
	items := Wearables()
	for _, w := range items {
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
	}
	return items, nil
}
