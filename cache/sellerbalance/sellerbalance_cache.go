package sellerbalance

import (
	"sync"

	"gitlab.com/missiondax-platform/ledger_api/model"
)

// In-process projection of per-seller balances. Commission rows stay
// authoritative: every write path invalidates the affected seller before
// its transaction is considered done, so a read never observes a balance
// older than the last committed state change in this process.
type cacheStore struct {
	balances map[uint64]model.Balance
	lock     sync.RWMutex
}

var cache *cacheStore

func init() {
	cache = &cacheStore{balances: make(map[uint64]model.Balance)}
}

// Get returns the cached balance for a seller
func Get(sellerID uint64) (model.Balance, bool) {
	cache.lock.RLock()
	defer cache.lock.RUnlock()
	balance, ok := cache.balances[sellerID]
	return balance, ok
}

// Set stores the balance for a seller
func Set(sellerID uint64, balance model.Balance) {
	cache.lock.Lock()
	defer cache.lock.Unlock()
	cache.balances[sellerID] = balance
}

// Invalidate drops the cached balance for a seller
func Invalidate(sellerID uint64) {
	cache.lock.Lock()
	defer cache.lock.Unlock()
	delete(cache.balances, sellerID)
}

// Flush drops every cached balance. Used after bulk sweeps that touch an
// unbounded set of sellers.
func Flush() {
	cache.lock.Lock()
	defer cache.lock.Unlock()
	cache.balances = make(map[uint64]model.Balance)
}
