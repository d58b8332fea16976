// Package memory provides an in-memory TTL response cache adapter.
package memory

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/lodestone-labs/ruminate-cli/internal/core/ports/driven"
)

// Ensure ResponseCache implements the interface.
var _ driven.ResponseCache = (*ResponseCache)(nil)

// DefaultCleanupInterval is how often expired entries are purged.
const DefaultCleanupInterval = 10 * time.Minute

// ResponseCache stores distilled answers keyed by query digest.
// Entries expire after the configured TTL and are never persisted.
type ResponseCache struct {
	store *gocache.Cache
}

// NewResponseCache creates a cache whose entries expire after ttl.
func NewResponseCache(ttl time.Duration) *ResponseCache {
	return &ResponseCache{
		store: gocache.New(ttl, DefaultCleanupInterval),
	}
}

// Get returns the cached entry for key, if present and not expired.
func (c *ResponseCache) Get(key string) (driven.CacheEntry, bool) {
	v, ok := c.store.Get(key)
	if !ok {
		return driven.CacheEntry{}, false
	}
	entry, ok := v.(driven.CacheEntry)
	if !ok {
		// A foreign value under our key should never happen; treat it
		// as a miss and drop it.
		c.store.Delete(key)
		return driven.CacheEntry{}, false
	}
	return entry, true
}

// Put stores an entry under key with the cache's default TTL.
func (c *ResponseCache) Put(key string, entry driven.CacheEntry) {
	c.store.Set(key, entry, gocache.DefaultExpiration)
}

// Clear removes all entries and returns how many were removed.
func (c *ResponseCache) Clear() int {
	n := c.store.ItemCount()
	c.store.Flush()
	return n
}

// Len returns the number of entries, including any not yet purged
// after expiry.
func (c *ResponseCache) Len() int {
	return c.store.ItemCount()
}
