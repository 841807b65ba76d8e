package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/firesense/firesense/internal/domain"
)

const (
	latestKey = "firesense:latest_reading"
	latestTTL = 1 * time.Hour
)

// ErrCacheMiss indicates the latest-reading key is absent or expired.
var ErrCacheMiss = errors.New("latest reading not cached")

// LatestCache keeps the most recently written reading so the hot
// /api/readings/latest path avoids a Postgres round trip.
type LatestCache struct {
	rdb *goredis.Client
}

// NewLatestCache creates a cache on top of the shared client.
func NewLatestCache(client *Client) *LatestCache {
	return &LatestCache{rdb: client.rdb}
}

// Set stores reading as the latest, refreshing the TTL.
func (c *LatestCache) Set(ctx context.Context, reading *domain.Reading) error {
	data, err := json.Marshal(reading)
	if err != nil {
		return fmt.Errorf("failed to marshal reading: %w", err)
	}
	if err := c.rdb.Set(ctx, latestKey, data, latestTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache latest reading: %w", err)
	}
	return nil
}

// Get returns the cached latest reading, or ErrCacheMiss.
func (c *LatestCache) Get(ctx context.Context) (*domain.Reading, error) {
	data, err := c.rdb.Get(ctx, latestKey).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached latest reading: %w", err)
	}

	var reading domain.Reading
	if err := json.Unmarshal(data, &reading); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached reading: %w", err)
	}
	return &reading, nil
}
