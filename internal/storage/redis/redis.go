package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"booking_service/internal/models"
	"booking_service/internal/storage"

	"github.com/redis/go-redis/v9"
)

const snapshotKey = "booking:snapshot"

// SnapshotCache keeps the merged façade snapshot in Redis so that every API
// instance sees the same cache and the same invalidations.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(ctx context.Context, address string, password string, db int, ttl time.Duration) (*SnapshotCache, error) {
	const op = "storage.redis.New"

	rdb := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return NewWithClient(rdb, ttl), nil
}

func NewWithClient(client *redis.Client, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{client: client, ttl: ttl}
}

// Get returns the cached snapshot or storage.ErrCacheMiss.
func (c *SnapshotCache) Get(ctx context.Context) (*models.Snapshot, error) {
	const op = "storage.redis.Get"

	val, err := c.client.Get(ctx, snapshotKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, storage.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal([]byte(val), &snap); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &snap, nil
}

// Set stores the snapshot. A zero ttl keeps it until the next invalidation.
func (c *SnapshotCache) Set(ctx context.Context, snap *models.Snapshot) error {
	const op = "storage.redis.Set"

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := c.client.Set(ctx, snapshotKey, string(data), c.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (c *SnapshotCache) Invalidate(ctx context.Context) error {
	const op = "storage.redis.Invalidate"

	if err := c.client.Del(ctx, snapshotKey).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Close закрывает соединение с Redis.
func (c *SnapshotCache) Close() {
	c.client.Close()
}
