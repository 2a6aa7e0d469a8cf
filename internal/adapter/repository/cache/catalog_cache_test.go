package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zora-digital-fashion/marketplace/internal/platform/logger"
	"github.com/zora-digital-fashion/marketplace/internal/platform/metrics"
	"github.com/zora-digital-fashion/marketplace/internal/wearable/domain"
	"github.com/zora-digital-fashion/marketplace/internal/wearable/seed"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *MockStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) Snapshot(ctx context.Context) ([]*domain.Wearable, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]*domain.Wearable)
	return items, args.Error(1)
}

func (m *MockCatalog) FindByID(ctx context.Context, id string) (*domain.Wearable, error) {
	args := m.Called(ctx, id)
	w, _ := args.Get(0).(*domain.Wearable)
	return w, args.Error(1)
}

const ttl = time.Minute

func newCached(t *testing.T) (*CachedCatalog, *MockCatalog, *MockStore) {
	t.Helper()
	next := new(MockCatalog)
	store := new(MockStore)
	c := NewCachedCatalog(next, store, ttl, logger.NewNopLogger(), metrics.NewMetricsManager("test"))
	return c, next, store
}

func TestCachedCatalog_MissLoadsAndStores(t *testing.T) {
	c, next, store := newCached(t)
	ctx := context.Background()
	items := seed.Wearables()

	store.On("Get", ctx, snapshotKey).Return(nil, ErrNotFound).Once()
	next.On("Snapshot", ctx).Return(items, nil).Once()
	store.On("Set", ctx, snapshotKey, mock.AnythingOfType("[]uint8"), ttl).Return(nil).Once()

	got, err := c.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, items, got)

	next.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestCachedCatalog_HitSkipsRepository(t *testing.T) {
	c, next, store := newCached(t)
	ctx := context.Background()
	items := seed.Wearables()

	encoded, err := json.Marshal(items)
	require.NoError(t, err)
	store.On("Get", ctx, snapshotKey).Return(encoded, nil)

	got, err := c.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, items[0].Name, got[0].Name)
	assert.Equal(t, items[2].Metadata, got[2].Metadata)
	assert.True(t, items[1].CreatedAt.Equal(got[1].CreatedAt))

	w, err := c.FindByID(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, "Holographic Mask", w.Name)

	_, err = c.FindByID(ctx, "404")
	assert.ErrorIs(t, err, domain.ErrWearableNotFound)

	next.AssertNotCalled(t, "Snapshot", mock.Anything)
}

func TestCachedCatalog_StoreFailureFallsBack(t *testing.T) {
	c, next, store := newCached(t)
	ctx := context.Background()
	items := seed.Wearables()

	store.On("Get", ctx, snapshotKey).Return(nil, errors.New("connection refused"))
	next.On("Snapshot", ctx).Return(items, nil)
	store.On("Set", ctx, snapshotKey, mock.Anything, ttl).Return(errors.New("connection refused"))

	got, err := c.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestCachedCatalog_CorruptEntryFallsBack(t *testing.T) {
	c, next, store := newCached(t)
	ctx := context.Background()

	store.On("Get", ctx, snapshotKey).Return([]byte("{not json"), nil)
	next.On("Snapshot", ctx).Return(seed.Wearables(), nil)
	store.On("Set", ctx, snapshotKey, mock.Anything, ttl).Return(nil)

	got, err := c.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	next.AssertNumberOfCalls(t, "Snapshot", 1)
}

func TestCachedCatalog_RepositoryErrorPropagates(t *testing.T) {
	c, next, store := newCached(t)
	ctx := context.Background()

	store.On("Get", ctx, snapshotKey).Return(nil, ErrNotFound)
	next.On("Snapshot", ctx).Return(nil, domain.ErrRepository)

	_, err := c.Snapshot(ctx)
	assert.ErrorIs(t, err, domain.ErrRepository)
	store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCachedCatalog_Invalidate(t *testing.T) {
	c, _, store := newCached(t)
	ctx := context.Background()

	store.On("Delete", ctx, snapshotKey).Return(nil).Once()
	require.NoError(t, c.Invalidate(ctx))
	store.AssertExpectations(t)
}
