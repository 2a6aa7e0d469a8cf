package domain

import "context"

// CatalogRepository supplies catalog snapshots. Implementations must return
// wearables in catalog order; callers treat the returned records as read-only.
type CatalogRepository interface {
	Snapshot(ctx context.Context) ([]*Wearable, error)
	FindByID(ctx context.Context, id string) (*Wearable, error)
}

// PurchaseRepository persists simulated purchases.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *Purchase) error
	CountByWearableID(ctx context.Context, wearableID string) (int64, error)
	FindByBuyer(ctx context.Context, buyer string) ([]*Purchase, error)
}

// EventPublisher publishes domain events to a message bus.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// AssetStorage resolves object keys into downloadable URLs.
type AssetStorage interface {
	PresignedURL(ctx context.Context, objectKey string) (string, error)
}

// ReceiptMailer sends purchase receipts.
type ReceiptMailer interface {
	SendPurchaseReceipt(toEmail string, wearableName string, purchase *Purchase) error
}
