package mongodb

import (
	"time"

	"github.com/zora-digital-fashion/marketplace/internal/wearable/domain"
)

type creatorDocument struct {
	Address  string `bson:"address"`
	Name     string `bson:"name"`
	Avatar   string `bson:"avatar,omitempty"`
	Verified bool   `bson:"verified"`
}

type imagesDocument struct {
	Thumbnail string   `bson:"thumbnail"`
	Preview   []string `bson:"preview,omitempty"`
	Model3D   string   `bson:"model_3d,omitempty"`
}

type metadataDocument struct {
	TokenID         string `bson:"token_id,omitempty"`
	ContractAddress string `bson:"contract_address,omitempty"`
	Rarity          string `bson:"rarity"`
	Edition         int    `bson:"edition"`
	TotalSupply     int    `bson:"total_supply"`
}

// wearableDocument stores one catalog entry. Seq fixes catalog order,
// which is insertion order.
type wearableDocument struct {
	ID          string           `bson:"_id"`
	Seq         int64            `bson:"seq"`
	Name        string           `bson:"name"`
	Description string           `bson:"description"`
	Price       float64          `bson:"price"`
	Currency    string           `bson:"currency"`
	Creator     creatorDocument  `bson:"creator"`
	Category    string           `bson:"category"`
	Platforms   []string         `bson:"platforms"`
	Images      imagesDocument   `bson:"images"`
	Metadata    metadataDocument `bson:"metadata"`
	Tags        []string         `bson:"tags,omitempty"`
	CreatedAt   time.Time        `bson:"created_at"`
	UpdatedAt   time.Time        `bson:"updated_at"`
}

type purchaseDocument struct {
	ID              string    `bson:"_id"`
	WearableID      string    `bson:"wearable_id"`
	Buyer           string    `bson:"buyer"`
	Seller          string    `bson:"seller"`
	Price           float64   `bson:"price"`
	Currency        string    `bson:"currency"`
	TransactionHash string    `bson:"transaction_hash"`
	Timestamp       time.Time `bson:"timestamp"`
}

func fromDomainWearable(w *domain.Wearable, seq int64) *wearableDocument {
	platforms := make([]string, len(w.Platforms))
	for i, p := range w.Platforms {
		platforms[i] = string(p)
	}
	return &wearableDocument{
		ID:          w.ID,
		Seq:         seq,
		Name:        w.Name,
		Description: w.Description,
		Price:       w.Price,
		Currency:    string(w.Currency),
		Creator: creatorDocument{
			Address:  w.Creator.Address,
			Name:     w.Creator.Name,
			Avatar:   w.Creator.Avatar,
			Verified: w.Creator.Verified,
		},
		Category:  string(w.Category),
		Platforms: platforms,
		Images: imagesDocument{
			Thumbnail: w.Images.Thumbnail,
			Preview:   append([]string(nil), w.Images.Preview...),
			Model3D:   w.Images.Model3D,
		},
		Metadata: metadataDocument{
			TokenID:         w.Metadata.TokenID,
			ContractAddress: w.Metadata.ContractAddress,
			Rarity:          string(w.Metadata.Rarity),
			Edition:         w.Metadata.Edition,
			TotalSupply:     w.Metadata.TotalSupply,
		},
		Tags:      append([]string(nil), w.Tags...),
		CreatedAt: w.CreatedAt.UTC(),
		UpdatedAt: w.UpdatedAt.UTC(),
	}
}

// toDomainWearable converts and validates, so a hand-edited document with
// values outside the enumerations never reaches the engine.
func (d *wearableDocument) toDomainWearable() (*domain.Wearable, error) {
	platforms := make([]domain.Platform, len(d.Platforms))
	for i, p := range d.Platforms {
		platforms[i] = domain.Platform(p)
	}
	w := &domain.Wearable{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Currency:    domain.Currency(d.Currency),
		Creator: domain.Creator{
			Address:  d.Creator.Address,
			Name:     d.Creator.Name,
			Avatar:   d.Creator.Avatar,
			Verified: d.Creator.Verified,
		},
		Category:  domain.Category(d.Category),
		Platforms: platforms,
		Images: domain.Images{
			Thumbnail: d.Images.Thumbnail,
			Preview:   d.Images.Preview,
			Model3D:   d.Images.Model3D,
		},
		Metadata: domain.Metadata{
			TokenID:         d.Metadata.TokenID,
			ContractAddress: d.Metadata.ContractAddress,
			Rarity:          domain.Rarity(d.Metadata.Rarity),
			Edition:         d.Metadata.Edition,
			TotalSupply:     d.Metadata.TotalSupply,
		},
		Tags:      d.Tags,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

func fromDomainPurchase(p *domain.Purchase) *purchaseDocument {
	return &purchaseDocument{
		ID:              p.ID,
		WearableID:      p.WearableID,
		Buyer:           p.Buyer,
		Seller:          p.Seller,
		Price:           p.Price,
		Currency:        string(p.Currency),
		TransactionHash: p.TransactionHash,
		Timestamp:       p.Timestamp.UTC(),
	}
}

func (d *purchaseDocument) toDomainPurchase() *domain.Purchase {
	return &domain.Purchase{
		ID:              d.ID,
		WearableID:      d.WearableID,
		Buyer:           d.Buyer,
		Seller:          d.Seller,
		Price:           d.Price,
		Currency:        domain.Currency(d.Currency),
		TransactionHash: d.TransactionHash,
		Timestamp:       d.Timestamp,
	}
}
