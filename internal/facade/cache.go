package facade

import (
	"context"
	"sync"

	"booking_service/internal/models"
	"booking_service/internal/storage"
)

// MemoryCache holds the snapshot in process memory with no expiry.
type MemoryCache struct {
	mu   sync.RWMutex
	snap *models.Snapshot
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

func (c *MemoryCache) Get(_ context.Context) (*models.Snapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.snap == nil {
		return nil, storage.ErrCacheMiss
	}

	return c.snap, nil
}

func (c *MemoryCache) Set(_ context.Context, snap *models.Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snap = snap

	return nil
}

func (c *MemoryCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snap = nil

	return nil
}
