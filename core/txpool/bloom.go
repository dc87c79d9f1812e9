// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpool

import (
	"encoding/binary"

	"github.com/holiman/bloomfilter/v2"
	"github.com/luxfi/geth/common"
)

// dedupeFilter is a probabilistic fast path in front of the exact
// already-imported check: a miss here proves the hash has never been
// seen, letting Import skip the byHash map lookup entirely for the
// overwhelmingly common case of a genuinely new transaction. A hit falls
// through to the exact check, since bloom filters have false positives
// but never false negatives.
type dedupeFilter struct {
	filter *bloomfilter.Filter
}

// newDedupeFilter sizes a filter for expectedItems entries at roughly a
// 1% false-positive rate. expectedItems of zero falls back to a default
// of 65536.
func newDedupeFilter(expectedItems uint64) *dedupeFilter {
	if expectedItems == 0 {
		expectedItems = 65536
	}
	f, err := bloomfilter.NewOptimal(expectedItems, 0.01)
	if err != nil {
		// NewOptimal only fails on a nonsensical (zero-item, degenerate
		// false-positive-rate) request, which the fallback above rules
		// out. The fallback is a fixed 1M-bit, 4-hash filter; if that too
		// cannot be built, the nil filter makes maybeContains report true
		// for every hash, i.e. every lookup falls through to the exact check.
		f, _ = bloomfilter.New(1<<20, 4)
	}
	return &dedupeFilter{filter: f}
}

func (d *dedupeFilter) maybeContains(h common.Hash) bool {
	if d == nil || d.filter == nil {
		return true
	}
	return d.filter.Contains(hashKey(h))
}

func (d *dedupeFilter) add(h common.Hash) {
	if d == nil || d.filter == nil {
		return
	}
	d.filter.Add(hashKey(h))
}

// hashKey is a hash.Hash64 adapter over the first 8 bytes of a transaction
// hash, the only method of the interface bloomfilter.Filter actually
// calls.
type hashKey common.Hash

func (h hashKey) Sum64() uint64            { return binary.BigEndian.Uint64(h[:8]) }
func (h hashKey) Write(p []byte) (int, error) { return len(p), nil }
func (h hashKey) Sum(b []byte) []byte      { return b }
func (h hashKey) Reset()                   {}
func (h hashKey) Size() int                { return 8 }
func (h hashKey) BlockSize() int           { return 8 }
