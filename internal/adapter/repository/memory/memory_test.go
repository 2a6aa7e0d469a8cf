package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zora-digital-fashion/marketplace/internal/wearable/domain"
	"github.com/zora-digital-fashion/marketplace/internal/wearable/seed"
)

func TestCatalogRepository_SnapshotKeepsOrderAndIsolation(t *testing.T) {
	repo, err := NewCatalogRepository(seed.Wearables())
	require.NoError(t, err)

	snap, err := repo.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snap, 3)
	assert.Equal(t, "1", snap[0].ID)
	assert.Equal(t, "3", snap[2].ID)

	snap[0].Name = "tampered"
	snap[0].Tags[0] = "tampered"

	again, err := repo.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Cyberpunk Jacket", again[0].Name)
	assert.Equal(t, "cyberpunk", again[0].Tags[0])
}

func TestCatalogRepository_FindByID(t *testing.T) {
	repo, err := NewCatalogRepository(seed.Wearables())
	require.NoError(t, err)

	w, err := repo.FindByID(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "AR Sunglasses", w.Name)

	_, err = repo.FindByID(context.Background(), "404")
	assert.ErrorIs(t, err, domain.ErrWearableNotFound)
}

func TestCatalogRepository_RejectsInvalidAndDuplicates(t *testing.T) {
	items := seed.Wearables()
	items[1].Metadata.Edition = 0
	_, err := NewCatalogRepository(items)
	assert.ErrorIs(t, err, domain.ErrInvalidWearable)

	repo, err := NewCatalogRepository(seed.Wearables())
	require.NoError(t, err)
	err = repo.Add(context.Background(), seed.Wearables()[0])
	assert.ErrorIs(t, err, domain.ErrInvalidWearable)
}

func TestCatalogRepository_CanceledContext(t *testing.T) {
	repo, err := NewCatalogRepository(nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = repo.Snapshot(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPurchaseRepository(t *testing.T) {
	repo := NewPurchaseRepository()
	ctx := context.Background()
	base := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, &domain.Purchase{ID: "p1", WearableID: "1", Buyer: "0xa", Timestamp: base}))
	require.NoError(t, repo.Create(ctx, &domain.Purchase{ID: "p2", WearableID: "1", Buyer: "0xb", Timestamp: base.Add(time.Minute)}))
	require.NoError(t, repo.Create(ctx, &domain.Purchase{ID: "p3", WearableID: "2", Buyer: "0xa", Timestamp: base.Add(time.Hour)}))

	assert.ErrorIs(t, repo.Create(ctx, &domain.Purchase{ID: "p1", WearableID: "3"}), domain.ErrRepository)
	assert.ErrorIs(t, repo.Create(ctx, &domain.Purchase{}), domain.ErrInvalidInput)

	n, err := repo.CountByWearableID(ctx, "1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = repo.CountByWearableID(ctx, "3")
	require.NoError(t, err)
	assert.Zero(t, n)

	mine, err := repo.FindByBuyer(ctx, "0xa")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "p3", mine[0].ID)
	assert.Equal(t, "p1", mine[1].ID)

	none, err := repo.FindByBuyer(ctx, "0xc")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestPurchaseRepository_ConcurrentCreate(t *testing.T) {
	repo := NewPurchaseRepository()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.Create(context.Background(), &domain.Purchase{
				ID:         fmt.Sprintf("p%d", i),
				WearableID: "1",
			})
		}(i)
	}
	wg.Wait()

	n, err := repo.CountByWearableID(context.Background(), "1")
	require.NoError(t, err)
	assert.EqualValues(t, 50, n)
}
