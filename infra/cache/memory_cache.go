package cache

import (
	"context"
	"sync"

	"github.com/amirasaad/finledger/pkg/cache"
)

// MemoryCache implements RateTableCache in process memory.
type MemoryCache struct {
	mu   sync.RWMutex
	snap *cache.RateSnapshot
}

var _ cache.RateTableCache = (*MemoryCache)(nil)

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

// Load returns the stored snapshot.
func (c *MemoryCache) Load(context.Context) (cache.RateSnapshot, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snap == nil {
		return cache.RateSnapshot{}, false, nil
	}
	snap := *c.snap
	snap.Rates = append([]cache.RateEntry(nil), c.snap.Rates...)
	return snap, true, nil
}

// Save replaces the stored snapshot.
func (c *MemoryCache) Save(_ context.Context, snap cache.RateSnapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap.Rates = append([]cache.RateEntry(nil), snap.Rates...)
	c.snap = &snap
	return nil
}
