package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/zora-digital-fashion/marketplace/internal/platform/logger"
	"github.com/zora-digital-fashion/marketplace/internal/wearable/domain"
)

const wearableCollectionName = "wearables"

// WearableRepository implements domain.CatalogRepository on MongoDB.
type WearableRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewWearableRepository ensures the catalog indexes exist. Index failures are
// logged and do not abort startup.
func NewWearableRepository(db *mongo.Database, log *logger.Logger) *WearableRepository {
	collection := db.Collection(wearableCollectionName)

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "seq", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "creator.address", Value: 1}}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Error("Failed to create indexes for wearables collection", zap.Error(err))
	} else {
		log.Info("Successfully ensured indexes for wearables collection")
	}

	return &WearableRepository{
		collection: collection,
		logger:     log.Named("WearableRepository"),
	}
}

// Snapshot loads the whole catalog in catalog order.
func (r *WearableRepository) Snapshot(ctx context.Context) ([]*domain.Wearable, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}))
	if err != nil {
		r.logger.Error("Failed to load catalog from DB", zap.Error(err))
		return nil, fmt.Errorf("%w: db find failed: %v", domain.ErrRepository, err)
	}
	defer cursor.Close(ctx)

	var docs []*wearableDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("Failed to decode catalog from DB", zap.Error(err))
		return nil, fmt.Errorf("%w: db cursor all failed: %v", domain.ErrRepository, err)
	}

	items := make([]*domain.Wearable, 0, len(docs))
	for _, doc := range docs {
		w, err := doc.toDomainWearable()
		if err != nil {
			// invalid records are skipped, the rest of the catalog is served
			r.logger.Warn("Skipping invalid wearable document", zap.String("wearable_id", doc.ID), zap.Error(err))
			continue
		}
		items = append(items, w)
	}
	r.logger.Debug("Catalog snapshot loaded", zap.Int("count", len(items)))
	return items, nil
}

func (r *WearableRepository) FindByID(ctx context.Context, id string) (*domain.Wearable, error) {
	var doc wearableDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrWearableNotFound
		}
		r.logger.Error("Failed to get wearable by ID from DB", zap.Error(err), zap.String("wearable_id", id))
		return nil, fmt.Errorf("%w: db findone failed: %v", domain.ErrRepository, err)
	}
	return doc.toDomainWearable()
}

// InsertMany validates and appends items after the current last entry.
func (r *WearableRepository) InsertMany(ctx context.Context, items []*domain.Wearable) error {
	if len(items) == 0 {
		return nil
	}
	next, err := r.nextSeq(ctx)
	if err != nil {
		return err
	}

	docs := make([]interface{}, 0, len(items))
	for i, w := range items {
		if err := w.Validate(); err != nil {
			return err
		}
		docs = append(docs, fromDomainWearable(w, next+int64(i)))
	}

	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: duplicate wearable id", domain.ErrInvalidWearable)
		}
		r.logger.Error("Failed to insert wearables into DB", zap.Error(err))
		return fmt.Errorf("%w: db insert failed: %v", domain.ErrRepository, err)
	}
	r.logger.Info("Wearables inserted", zap.Int("count", len(items)))
	return nil
}

// SeedIfEmpty inserts items only into an empty collection. It reports whether
// anything was inserted.
func (r *WearableRepository) SeedIfEmpty(ctx context.Context, items []*domain.Wearable) (bool, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return false, fmt.Errorf("%w: db count failed: %v", domain.ErrRepository, err)
	}
	if n > 0 {
		r.logger.Info("Catalog already populated, skipping seed", zap.Int64("count", n))
		return false, nil
	}
	if err := r.InsertMany(ctx, items); err != nil {
		return false, err
	}
	return true, nil
}

func (r *WearableRepository) nextSeq(ctx context.Context) (int64, error) {
	var last wearableDocument
	opts := options.FindOne().SetSort(bson.D{{Key: "seq", Value: -1}}).SetProjection(bson.M{"seq": 1})
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&last)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: db findone failed: %v", domain.ErrRepository, err)
	}
	return last.Seq + 1, nil
}
