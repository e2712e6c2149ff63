package cache

import (
	"sync"
	"time"

	"github.com/lanepos/register/internal/domain"
)

// SnapshotCache is a thread-safe holder for the most recent catalog snapshot
// with TTL-based expiry. Search calls read the cached slice as an immutable
// snapshot; Set stores a defensive copy so later caller mutations cannot
// leak into in-flight searches.
type SnapshotCache struct {
	mutex    sync.RWMutex
	products []domain.Product
	fetched  time.Time
	ttl      time.Duration
}

// NewSnapshotCache creates a snapshot cache with the given TTL
func NewSnapshotCache(ttl time.Duration) *SnapshotCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &SnapshotCache{ttl: ttl}
}

// Get returns the cached snapshot, or false when nothing has been stored or
// the snapshot has expired.
func (c *SnapshotCache) Get() ([]domain.Product, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if c.products == nil {
		return nil, false
	}
	if time.Since(c.fetched) > c.ttl {
		return nil, false
	}
	return c.products, true
}

// Set stores a fresh snapshot and resets the TTL clock
func (c *SnapshotCache) Set(products []domain.Product) {
	copied := make([]domain.Product, len(products))
	copy(copied, products)

	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.products = copied
	c.fetched = time.Now()
}

// Invalidate discards the cached snapshot
func (c *SnapshotCache) Invalidate() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.products = nil
	c.fetched = time.Time{}
}

// Size returns the number of cached products (for debugging/monitoring)
func (c *SnapshotCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.products)
}
