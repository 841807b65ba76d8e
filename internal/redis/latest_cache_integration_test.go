package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firesense/firesense/internal/domain"
)

// Needs a running Redis, e.g.:
//
//	docker run --rm -p 6379:6379 redis:7
//	TEST_REDIS_URL=redis://localhost:6379/0 go test ./internal/redis/
func setupTestCache(t *testing.T) *LatestCache {
	t.Helper()

	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := NewClient(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.rdb.Del(context.Background(), latestKey).Err()
		_ = client.Close()
	})

	cache := NewLatestCache(client)
	require.NoError(t, client.rdb.Del(ctx, latestKey).Err())
	return cache
}

func TestLatestCache_MissWhenEmpty(t *testing.T) {
	cache := setupTestCache(t)

	_, err := cache.Get(context.Background())
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestLatestCache_RoundTrip(t *testing.T) {
	cache := setupTestCache(t)
	ctx := context.Background()

	reading := &domain.Reading{
		ID:           7,
		ThingspeakID: 42,
		CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Temperature:  33.3,
		FireScore:    0.91,
	}
	require.NoError(t, cache.Set(ctx, reading))

	got, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, reading.ID, got.ID)
	assert.Equal(t, reading.ThingspeakID, got.ThingspeakID)
	assert.True(t, got.CreatedAt.Equal(reading.CreatedAt))
	assert.InDelta(t, reading.FireScore, got.FireScore, 1e-9)
}

func TestLatestCache_SetOverwrites(t *testing.T) {
	cache := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, &domain.Reading{ID: 1, ThingspeakID: 10}))
	require.NoError(t, cache.Set(ctx, &domain.Reading{ID: 2, ThingspeakID: 11}))

	got, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.ID)
}
