// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpool

import (
	lru "github.com/hashicorp/golang-lru"
	"github.com/luxfi/geth/common"
)

// evictedCache remembers the hashes of recently evicted, dropped, or
// rejected transactions together with the recorded reason, for
// Pool.RecentDiscard to report. Import does not consult it, so a
// resubmitted hash goes through the full admission path again.
type evictedCache struct {
	cache *lru.Cache
}

// newEvictedCache builds an evictedCache with room for size hashes. A
// size of zero disables the cache: every lookup reports a miss.
func newEvictedCache(size int) *evictedCache {
	if size <= 0 {
		return &evictedCache{}
	}
	c, err := lru.New(size)
	if err != nil {
		// lru.New only errors on size <= 0, already excluded above.
		return &evictedCache{}
	}
	return &evictedCache{cache: c}
}

func (c *evictedCache) record(hash common.Hash, reason error) {
	if c.cache == nil {
		return
	}
	c.cache.Add(hash, reason)
}

func (c *evictedCache) reasonFor(hash common.Hash) (error, bool) {
	if c.cache == nil {
		return nil, false
	}
	v, ok := c.cache.Get(hash)
	if !ok {
		return nil, false
	}
	err, _ := v.(error)
	return err, true
}
