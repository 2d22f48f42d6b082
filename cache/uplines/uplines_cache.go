package uplines

import (
	"sync"
)

// The referrer edge of a seller never changes after creation, so entries
// are cached for the lifetime of the process and never invalidated.
type cacheStore struct {
	edges map[uint64]*uint64
	lock  sync.RWMutex
}

var cache *cacheStore

func init() {
	cache = &cacheStore{edges: make(map[uint64]*uint64)}
}

// Get returns the cached referrer id for a seller. The second return
// value reports a cache hit; a hit with a nil referrer means the seller
// has no upline.
func Get(sellerID uint64) (*uint64, bool) {
	cache.lock.RLock()
	defer cache.lock.RUnlock()
	referrerID, ok := cache.edges[sellerID]
	return referrerID, ok
}

// Set stores the referrer edge for a seller
func Set(sellerID uint64, referrerID *uint64) {
	cache.lock.Lock()
	defer cache.lock.Unlock()
	cache.edges[sellerID] = referrerID
}

// Flush clears the cache. Only used by tests.
func Flush() {
	cache.lock.Lock()
	defer cache.lock.Unlock()
	cache.edges = make(map[uint64]*uint64)
}
