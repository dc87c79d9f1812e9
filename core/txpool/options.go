// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpool

import "golang.org/x/time/rate"

// Options configures capacity limits and pluggable policy for a Pool.
// New fills a nil Scoring or Listener with its default, so the zero value
// yields an unbounded pool with the eviction cache disabled; DefaultOptions
// additionally sizes that cache. Build one with DefaultOptions and
// override fields as needed.
type Options struct {
	// MaxCount bounds the total number of transactions held across every
	// sender. Zero means unbounded.
	MaxCount int
	// MaxMemUsage bounds the sum of VerifiedTransaction.MemUsage() across
	// every pooled transaction. Zero means unbounded.
	MaxMemUsage uint64
	// MaxPerSender bounds how many transactions a single sender may have
	// pooled simultaneously. Zero means unbounded.
	MaxPerSender int

	// Scoring orders transactions within and across senders. Defaults to
	// GasPriceScoring.
	Scoring Scoring
	// Listener receives lifecycle notifications. Defaults to NopListener.
	Listener Listener

	// DedupeExpectedItems sizes the bloom-filter dedupe fast path; see
	// newDedupeFilter. Zero falls back to a fixed default of 65536 items.
	DedupeExpectedItems uint64
	// EvictedCacheSize bounds the LRU of recently discarded hashes that
	// Pool.RecentDiscard reports from; Import does not consult it. Zero
	// disables the cache.
	EvictedCacheSize int
	// RateLimit, if non-nil, bounds the rate of admitted transactions per
	// sender; senders bursting past it are rejected with
	// ErrRateLimited rather than considered for admission at all.
	RateLimit *rate.Limiter
}

// DefaultOptions returns sane defaults: no capacity bounds, gas-price
// scoring, a no-op listener, and a modestly sized eviction cache.
func DefaultOptions() Options {
	return Options{
		Scoring:          GasPriceScoring{},
		Listener:         NopListener{},
		EvictedCacheSize: 4096,
	}
}

func (o Options) withDefaults() Options {
	if o.Scoring == nil {
		o.Scoring = GasPriceScoring{}
	}
	if o.Listener == nil {
		o.Listener = NopListener{}
	}
	return o
}
