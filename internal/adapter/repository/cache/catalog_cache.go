// Package cache decorates a catalog repository with a snapshot cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/zora-digital-fashion/marketplace/internal/platform/logger"
	"github.com/zora-digital-fashion/marketplace/internal/platform/metrics"
	"github.com/zora-digital-fashion/marketplace/internal/wearable/domain"
)

const (
	keyPrefix   = "wearables:"
	snapshotKey = keyPrefix + "snapshot"
)

// CachedCatalog serves catalog snapshots from a Store and falls back to the
// wrapped repository on a miss. Cache failures degrade to a direct load.
type CachedCatalog struct {
	next    domain.CatalogRepository
	store   Store
	ttl     time.Duration
	logger  *logger.Logger
	metrics *metrics.MetricsManager
}

// NewCachedCatalog wraps next. m may be nil.
func NewCachedCatalog(next domain.CatalogRepository, store Store, ttl time.Duration, log *logger.Logger, m *metrics.MetricsManager) *CachedCatalog {
	return &CachedCatalog{
		next:    next,
		store:   store,
		ttl:     ttl,
		logger:  log.Named("CachedCatalog"),
		metrics: m,
	}
}

func (c *CachedCatalog) Snapshot(ctx context.Context) ([]*domain.Wearable, error) {
	data, err := c.store.Get(ctx, snapshotKey)
	switch {
	case err == nil:
		var items []*domain.Wearable
		uerr := json.Unmarshal(data, &items)
		if uerr == nil {
			c.metrics.ObserveCache("hit")
			return items, nil
		}
		c.logger.Warn("Discarding undecodable catalog snapshot", zap.Error(uerr))
		c.metrics.ObserveCache("error")
	case errors.Is(err, ErrNotFound):
		c.metrics.ObserveCache("miss")
	default:
		c.logger.Warn("Catalog cache read failed, loading from repository", zap.Error(err))
		c.metrics.ObserveCache("error")
	}

	items, err := c.next.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	if encoded, merr := json.Marshal(items); merr != nil {
		c.logger.Warn("Failed to encode catalog snapshot", zap.Error(merr))
	} else if serr := c.store.Set(ctx, snapshotKey, encoded, c.ttl); serr != nil {
		c.logger.Warn("Failed to store catalog snapshot", zap.Error(serr))
	}
	return items, nil
}

// FindByID looks the wearable up in the cached snapshot.
func (c *CachedCatalog) FindByID(ctx context.Context, id string) (*domain.Wearable, error) {
	items, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	for _, w := range items {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, domain.ErrWearableNotFound
}

// Invalidate drops the cached snapshot.
func (c *CachedCatalog) Invalidate(ctx context.Context) error {
	return c.store.Delete(ctx, snapshotKey)
}
