package geocache

import (
	"context"
	"sync"
	"time"

	"roadstay/models"
)

type memoryEntry struct {
	offers    []models.Offer
	expiresAt time.Time
}

// MemoryOfferCache is an in-process OfferCache for tests and single-node
// deployments without Redis. Expired entries are logically absent on read and
// garbage-collected lazily.
type MemoryOfferCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryOfferCache returns an empty in-memory cache.
func NewMemoryOfferCache() *MemoryOfferCache {
	return &MemoryOfferCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (c *MemoryOfferCache) Get(_ context.Context, key Key) ([]models.Offer, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key.String()]
	if !ok {
		return nil, false, nil
	}
	if !c.now().Before(entry.expiresAt) {
		delete(c.entries, key.String())
		return nil, false, nil
	}
	return entry.offers, true, nil
}

func (c *MemoryOfferCache) Put(_ context.Context, key Key, offers []models.Offer, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key.String()] = memoryEntry{offers: offers, expiresAt: c.now().Add(ttl)}
	return nil
}
