package mongodb

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/zora-digital-fashion/marketplace/internal/platform/logger"
	"github.com/zora-digital-fashion/marketplace/internal/wearable/domain"
	"github.com/zora-digital-fashion/marketplace/internal/wearable/seed"
)

// startMongo runs a throwaway MongoDB container. The test is skipped when
// Docker is unreachable or -short is set.
func startMongo(t *testing.T) *mongo.Database {
	t.Helper()
	if testing.Short() || os.Getenv("SKIP_DOCKER_TESTS") != "" {
		t.Skip("skipping MongoDB integration test")
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	pool.MaxWait = 60 * time.Second

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mongo",
		Tag:        "6.0",
		Env: []string{
			"MONGO_INITDB_ROOT_USERNAME=root",
			"MONGO_INITDB_ROOT_PASSWORD=password",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "could not start MongoDB resource")
	t.Cleanup(func() { _ = pool.Purge(resource) })

	uri := fmt.Sprintf("mongodb://root:password@%s/?authSource=admin", resource.GetHostPort("27017/tcp"))

	var client *mongo.Client
	err = pool.Retry(func() error {
		var errRetry error
		client, errRetry = mongo.Connect(context.Background(), options.Client().ApplyURI(uri))
		if errRetry != nil {
			return errRetry
		}
		return client.Ping(context.Background(), nil)
	})
	require.NoError(t, err, "could not connect to MongoDB")
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	return client.Database("wearables_it")
}

func TestMongoRepositories_Integration(t *testing.T) {
	db := startMongo(t)
	ctx := context.Background()
	log := logger.NewNopLogger()

	wearables := NewWearableRepository(db, log)
	purchases := NewPurchaseRepository(db, log)

	seeded, err := wearables.SeedIfEmpty(ctx, seed.Wearables())
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = wearables.SeedIfEmpty(ctx, seed.Wearables())
	require.NoError(t, err)
	assert.False(t, seeded)

	snap, err := wearables.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{snap[0].ID, snap[1].ID, snap[2].ID})

	extra := seed.Wearables()[0]
	extra.ID = "4"
	extra.Name = "Neon Cap"
	extra.Category = domain.CategoryHats
	require.NoError(t, wearables.InsertMany(ctx, []*domain.Wearable{extra}))

	snap, err = wearables.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap, 4)
	assert.Equal(t, "4", snap[3].ID)

	assert.ErrorIs(t, wearables.InsertMany(ctx, []*domain.Wearable{extra}), domain.ErrInvalidWearable)

	w, err := wearables.FindByID(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "AR Sunglasses", w.Name)

	_, err = wearables.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrWearableNotFound)

	base := time.Now().UTC().Truncate(time.Millisecond)
	require.NoError(t, purchases.Create(ctx, &domain.Purchase{
		ID: "p1", WearableID: "1", Buyer: "0xa", TransactionHash: "0x01", Timestamp: base,
	}))
	require.NoError(t, purchases.Create(ctx, &domain.Purchase{
		ID: "p2", WearableID: "1", Buyer: "0xa", TransactionHash: "0x02", Timestamp: base.Add(time.Second),
	}))
	assert.ErrorIs(t, purchases.Create(ctx, &domain.Purchase{
		ID: "p1", WearableID: "1", Buyer: "0xb", TransactionHash: "0x03", Timestamp: base,
	}), domain.ErrRepository)

	n, err := purchases.CountByWearableID(ctx, "1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	mine, err := purchases.FindByBuyer(ctx, "0xa")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "p2", mine[0].ID)
}
