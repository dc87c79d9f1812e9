// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpool

import (
	"sort"

	"github.com/luxfi/geth/common"
)

// SenderQueue holds every transaction currently pooled for a single
// sender, ordered ascending by nonce. It is not safe for concurrent use;
// Pool is responsible for serializing access.
type SenderQueue struct {
	sender  common.Address
	entries []*QueueEntry
}

func newSenderQueue(sender common.Address) *SenderQueue {
	return &SenderQueue{sender: sender}
}

func (q *SenderQueue) Len() int { return len(q.entries) }

func (q *SenderQueue) isEmpty() bool { return len(q.entries) == 0 }

// find returns the index of the entry with the given nonce, and whether
// one was found.
func (q *SenderQueue) find(nonce uint64) (int, bool) {
	i := sort.Search(len(q.entries), func(i int) bool {
		return q.entries[i].Tx.Nonce() >= nonce
	})
	if i < len(q.entries) && q.entries[i].Tx.Nonce() == nonce {
		return i, true
	}
	return i, false
}

// insert places tx into the queue at its nonce slot. If an entry already
// occupies that slot, scoring.Choose decides whether tx replaces it; the
// replaced entry (or nil, if tx was rejected or this was a fresh slot) is
// returned alongside the decision actually taken.
func (q *SenderQueue) insert(tx VerifiedTransaction, scoring Scoring) (old VerifiedTransaction, decision Decision) {
	i, found := q.find(tx.Nonce())
	if !found {
		entry := &QueueEntry{Tx: tx}
		q.entries = append(q.entries, nil)
		copy(q.entries[i+1:], q.entries[i:])
		q.entries[i] = entry
		q.rescore(scoring)
		return nil, InsertNew
	}

	existing := q.entries[i].Tx
	decision = scoring.Choose(existing, tx)
	if decision != ReplaceExisting {
		// InsertNew cannot apply to an occupied nonce slot; it is refused
		// the same as KeepExisting.
		return nil, KeepExisting
	}
	q.entries[i] = &QueueEntry{Tx: tx}
	q.rescore(scoring)
	return existing, ReplaceExisting
}

// removeHash drops the entry with the given hash, if any, and reports it.
// Nonces are the queue's primary key, so this is a linear scan over what
// is normally a short per-sender slice.
func (q *SenderQueue) removeHash(hash common.Hash, scoring Scoring) VerifiedTransaction {
	for i, e := range q.entries {
		if e.Tx.Hash() == hash {
			return q.removeAt(i, scoring)
		}
	}
	return nil
}

func (q *SenderQueue) removeAt(i int, scoring Scoring) VerifiedTransaction {
	removed := q.entries[i].Tx
	q.entries = append(q.entries[:i], q.entries[i+1:]...)
	q.rescore(scoring)
	return removed
}

// removeStalledBelow drops every entry with nonce strictly below next and
// returns them in ascending nonce order. Used by Cull once a sender's
// on-chain nonce has advanced.
func (q *SenderQueue) removeStalledBelow(next uint64, scoring Scoring) []VerifiedTransaction {
	i := sort.Search(len(q.entries), func(i int) bool {
		return q.entries[i].Tx.Nonce() >= next
	})
	if i == 0 {
		return nil
	}
	stale := make([]VerifiedTransaction, i)
	for j := 0; j < i; j++ {
		stale[j] = q.entries[j].Tx
	}
	q.entries = q.entries[i:]
	q.rescore(scoring)
	return stale
}

// worst returns the lowest-priority entry in the queue (by cross-sender
// comparePriority), the entry Pool records for this sender in its
// worstIndex for global capacity eviction. Returns nil if the queue is
// empty.
func (q *SenderQueue) worst() *QueueEntry {
	if len(q.entries) == 0 {
		return nil
	}
	worst := q.entries[0]
	for _, e := range q.entries[1:] {
		if comparePriority(e, worst) < 0 {
			worst = e
		}
	}
	return worst
}

// tail returns the highest-nonce entry, the one a MaxPerSender quota
// evicts first: it sits furthest from being spendable, regardless of its
// cross-sender score, so a sender flooding the pool with high-priced but
// high-nonce transactions still loses its own tail first.
func (q *SenderQueue) tail() *QueueEntry {
	if len(q.entries) == 0 {
		return nil
	}
	return q.entries[len(q.entries)-1]
}

// rescore asks scoring to recompute every entry's Score after a
// structural change. Cheap relative to the mutation itself: real
// Scoring.UpdateScores implementations are O(1) per entry.
func (q *SenderQueue) rescore(scoring Scoring) {
	scoring.UpdateScores(q.entries)
}

// snapshot returns a shallow copy of the queue's entries in nonce order,
// safe for a caller to range over after releasing the pool's lock.
func (q *SenderQueue) snapshot() []*QueueEntry {
	out := make([]*QueueEntry, len(q.entries))
	copy(out, q.entries)
	return out
}
