package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/zora-digital-fashion/marketplace/internal/platform/logger"
	"github.com/zora-digital-fashion/marketplace/internal/wearable/domain"
)

const purchaseCollectionName = "purchases"

// PurchaseRepository implements domain.PurchaseRepository on MongoDB.
type PurchaseRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewPurchaseRepository(db *mongo.Database, log *logger.Logger) *PurchaseRepository {
	collection := db.Collection(purchaseCollectionName)

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "wearable_id", Value: 1}}},
		{Keys: bson.D{{Key: "buyer", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "transaction_hash", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Error("Failed to create indexes for purchases collection", zap.Error(err))
	} else {
		log.Info("Successfully ensured indexes for purchases collection")
	}

	return &PurchaseRepository{
		collection: collection,
		logger:     log.Named("PurchaseRepository"),
	}
}

func (r *PurchaseRepository) Create(ctx context.Context, p *domain.Purchase) error {
	if p == nil || p.ID == "" {
		return fmt.Errorf("%w: purchase id cannot be empty", domain.ErrInvalidInput)
	}
	if _, err := r.collection.InsertOne(ctx, fromDomainPurchase(p)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: duplicate purchase '%s'", domain.ErrRepository, p.ID)
		}
		r.logger.Error("Failed to insert purchase into DB", zap.Error(err), zap.String("purchase_id", p.ID))
		return fmt.Errorf("%w: db insert failed: %v", domain.ErrRepository, err)
	}
	r.logger.Info("Purchase recorded in DB",
		zap.String("purchase_id", p.ID),
		zap.String("wearable_id", p.WearableID))
	return nil
}

func (r *PurchaseRepository) CountByWearableID(ctx context.Context, wearableID string) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"wearable_id": wearableID})
	if err != nil {
		r.logger.Error("Failed to count purchases in DB", zap.Error(err), zap.String("wearable_id", wearableID))
		return 0, fmt.Errorf("%w: db count failed: %v", domain.ErrRepository, err)
	}
	return n, nil
}

// FindByBuyer returns the buyer's purchases newest first.
func (r *PurchaseRepository) FindByBuyer(ctx context.Context, buyer string) ([]*domain.Purchase, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"buyer": buyer}, opts)
	if err != nil {
		r.logger.Error("Failed to find purchases by buyer", zap.Error(err), zap.String("buyer", buyer))
		return nil, fmt.Errorf("%w: db find failed: %v", domain.ErrRepository, err)
	}
	defer cursor.Close(ctx)

	var docs []*purchaseDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: db cursor all failed: %v", domain.ErrRepository, err)
	}
	out := make([]*domain.Purchase, len(docs))
	for i, doc := range docs {
		out[i] = doc.toDomainPurchase()
	}
	return out, nil
}
