package services

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// rateCache is a process-local TTL cache of externally fetched rates, keyed
// by currency pair. It is a latency optimization only: entries are lost on
// restart and near-simultaneous misses may each trigger a fetch.
type rateCache struct {
	mu      sync.RWMutex
	entries map[string]cachedRate
	ttl     time.Duration
	now     func() time.Time
}

type cachedRate struct {
	rate      decimal.Decimal
	fetchedAt time.Time
}

func newRateCache(ttl time.Duration, now func() time.Time) *rateCache {
	if now == nil {
		now = time.Now
	}
	return &rateCache{
		entries: make(map[string]cachedRate),
		ttl:     ttl,
		now:     now,
	}
}

func cacheKey(from, to string) string {
	return from + "/" + to
}

// get returns the cached rate for the pair if it is still within the TTL.
func (c *rateCache) get(from, to string) (decimal.Decimal, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[cacheKey(from, to)]
	if !ok {
		return decimal.Decimal{}, false
	}
	if c.now().Sub(entry.fetchedAt) >= c.ttl {
		return decimal.Decimal{}, false
	}
	return entry.rate, true
}

// put stores a freshly fetched rate for the pair.
func (c *rateCache) put(from, to string, rate decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(from, to)] = cachedRate{rate: rate, fetchedAt: c.now()}
}
