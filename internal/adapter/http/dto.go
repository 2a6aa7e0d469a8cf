package http

import (
	"time"

	"github.com/zora-digital-fashion/marketplace/internal/wearable/domain"
	"github.com/zora-digital-fashion/marketplace/internal/wearable/usecase"
)

type creatorResponse struct {
	Address  string `json:"address"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar,omitempty"`
	Verified bool   `json:"verified"`
}

type imagesResponse struct {
	Thumbnail string   `json:"thumbnail"`
	Preview   []string `json:"preview"`
	Model3D   string   `json:"model3D,omitempty"`
}

type metadataResponse struct {
	TokenID         string `json:"tokenId,omitempty"`
	ContractAddress string `json:"contractAddress,omitempty"`
	Rarity          string `json:"rarity"`
	Edition         int    `json:"edition"`
	TotalSupply     int    `json:"totalSupply"`
}

// WearableResponse is the JSON shape of one catalog entry.
type WearableResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       float64          `json:"price"`
	Currency    string           `json:"currency"`
	Creator     creatorResponse  `json:"creator"`
	Category    string           `json:"category"`
	Platforms   []string         `json:"platforms"`
	Images      imagesResponse   `json:"images"`
	Metadata    metadataResponse `json:"metadata"`
	Tags        []string         `json:"tags"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
	Owned       *bool            `json:"owned,omitempty"`
}

type PaginationResponse struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type SearchResponse struct {
	Items      []WearableResponse `json:"items"`
	Pagination PaginationResponse `json:"pagination"`
}

type facetCountResponse struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type priceRangeResponse struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type FacetsResponse struct {
	Categories []facetCountResponse `json:"categories"`
	Platforms  []facetCountResponse `json:"platforms"`
	Rarities   []facetCountResponse `json:"rarities"`
	SortKeys   []string             `json:"sortKeys"`
	PriceRange priceRangeResponse   `json:"priceRange"`
	Total      int                  `json:"total"`
}

type ModelURLResponse struct {
	URL string `json:"url"`
}

type PurchaseRequest struct {
	ReceiptEmail string `json:"receiptEmail"`
}

type PurchaseResponse struct {
	ID              string    `json:"id"`
	WearableID      string    `json:"wearableId"`
	Buyer           string    `json:"buyer"`
	Seller          string    `json:"seller"`
	Price           float64   `json:"price"`
	Currency        string    `json:"currency"`
	TransactionHash string    `json:"transactionHash"`
	Timestamp       time.Time `json:"timestamp"`
}

type PurchaseListResponse struct {
	Items []PurchaseResponse `json:"items"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func toWearableResponse(w *domain.Wearable) WearableResponse {
	platforms := make([]string, len(w.Platforms))
	for i, p := range w.Platforms {
		platforms[i] = string(p)
	}
	preview := append([]string{}, w.Images.Preview...)
	tags := append([]string{}, w.Tags...)

	return WearableResponse{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		Price:       w.Price,
		Currency:    string(w.Currency),
		Creator: creatorResponse{
			Address:  w.Creator.Address,
			Name:     w.Creator.Name,
			Avatar:   w.Creator.Avatar,
			Verified: w.Creator.Verified,
		},
		Category:  string(w.Category),
		Platforms: platforms,
		Images: imagesResponse{
			Thumbnail: w.Images.Thumbnail,
			Preview:   preview,
			Model3D:   w.Images.Model3D,
		},
		Metadata: metadataResponse{
			TokenID:         w.Metadata.TokenID,
			ContractAddress: w.Metadata.ContractAddress,
			Rarity:          string(w.Metadata.Rarity),
			Edition:         w.Metadata.Edition,
			TotalSupply:     w.Metadata.TotalSupply,
		},
		Tags:      tags,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

func toSearchResponse(res *usecase.SearchResult) SearchResponse {
	items := make([]WearableResponse, 0, len(res.Page.Items))
	for _, w := range res.Page.Items {
		item := toWearableResponse(w)
		owned := res.Owned[w.ID]
		item.Owned = &owned
		items = append(items, item)
	}
	return SearchResponse{
		Items: items,
		Pagination: PaginationResponse{
			Page:       res.Page.Page,
			Limit:      res.Page.Limit,
			Total:      res.Page.Total,
			TotalPages: res.Page.TotalPages,
		},
	}
}

func toFacetCounts(in []domain.FacetCount) []facetCountResponse {
	out := make([]facetCountResponse, len(in))
	for i, fc := range in {
		out[i] = facetCountResponse{Value: fc.Value, Count: fc.Count}
	}
	return out
}

func toFacetsResponse(f *domain.Facets) FacetsResponse {
	sortKeys := make([]string, len(f.SortKeys))
	for i, k := range f.SortKeys {
		sortKeys[i] = string(k)
	}
	return FacetsResponse{
		Categories: toFacetCounts(f.Categories),
		Platforms:  toFacetCounts(f.Platforms),
		Rarities:   toFacetCounts(f.Rarities),
		SortKeys:   sortKeys,
		PriceRange: priceRangeResponse{Min: f.PriceMin, Max: f.PriceMax},
		Total:      f.Total,
	}
}

func toPurchaseResponse(p *domain.Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:              p.ID,
		WearableID:      p.WearableID,
		Buyer:           p.Buyer,
		Seller:          p.Seller,
		Price:           p.Price,
		Currency:        string(p.Currency),
		TransactionHash: p.TransactionHash,
		Timestamp:       p.Timestamp,
	}
}
