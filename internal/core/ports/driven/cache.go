package driven

import (
	"time"

	"github.com/lodestone-labs/ruminate-cli/internal/core/domain"
)

// CacheEntry is one memoised distiller response.
type CacheEntry struct {
	// Answer is the complete distilled answer, stats included.
	Answer domain.Answer

	// CreatedAt is when the entry was written.
	CreatedAt time.Time
}

// ResponseCache memoises distiller output for a fixed time window.
// Entries are process-lifetime only; expiry is handled by the
// implementation. All methods are safe for concurrent use.
type ResponseCache interface {
	// Get returns the entry for key if present and unexpired. A malformed
	// entry is evicted and reported as a miss.
	Get(key string) (CacheEntry, bool)

	// Put stores an entry under key with the cache's TTL.
	Put(key string, entry CacheEntry)

	// Clear removes all entries regardless of TTL and returns the number
	// removed.
	Clear() int

	// Len returns the number of live entries.
	Len() int
}
