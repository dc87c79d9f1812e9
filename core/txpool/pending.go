// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpool

import (
	"container/heap"

	"github.com/luxfi/geth/common"
)

// PendingIterator lazily merges every sender's queue into a single,
// globally priority-ordered stream of Ready transactions. It is built
// from a snapshot taken under the pool's lock, so it is safe to hold and
// advance after the lock is released; it will not observe transactions
// imported or removed after the snapshot was taken.
//
// Within a sender, a Stalled entry never blocks what comes after it: the
// iterator skips over it and keeps classifying that sender's next nonce.
// Only a Future entry (a nonce gap) stops a sender's contribution, since
// everything behind a gap is unreachable regardless of its own score.
type PendingIterator struct {
	snapshot  map[common.Address][]*QueueEntry
	readiness Readiness
	h         pendingHeap
}

type pendingItem struct {
	sender common.Address
	idx    int
}

type pendingHeap struct {
	items    []pendingItem
	snapshot map[common.Address][]*QueueEntry
}

func (h *pendingHeap) Len() int { return len(h.items) }

func (h *pendingHeap) Less(i, j int) bool {
	ei := h.snapshot[h.items[i].sender][h.items[i].idx]
	ej := h.snapshot[h.items[j].sender][h.items[j].idx]
	return comparePriority(ei, ej) > 0 // max-heap: highest priority first
}

func (h *pendingHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *pendingHeap) Push(x any) { h.items = append(h.items, x.(pendingItem)) }

func (h *pendingHeap) Pop() any {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}

// newPendingIterator builds an iterator over snapshot, a per-sender,
// ascending-nonce slice of entries taken while the pool's lock was held.
func newPendingIterator(snapshot map[common.Address][]*QueueEntry, readiness Readiness) *PendingIterator {
	it := &PendingIterator{
		snapshot:  snapshot,
		readiness: readiness,
		h:         pendingHeap{snapshot: snapshot},
	}
	for sender, entries := range snapshot {
		if len(entries) > 0 {
			heap.Push(&it.h, pendingItem{sender: sender, idx: 0})
		}
	}
	return it
}

// Next advances the iterator and returns the next globally highest-
// priority Ready transaction, or (nil, false) once every sender's queue
// has been exhausted or blocked.
func (it *PendingIterator) Next() (*QueueEntry, bool) {
	for it.h.Len() > 0 {
		top := heap.Pop(&it.h).(pendingItem)
		entries := it.snapshot[top.sender]
		entry := entries[top.idx]

		switch it.readiness.Classify(entry.Tx) {
		case Ready:
			if top.idx+1 < len(entries) {
				heap.Push(&it.h, pendingItem{sender: top.sender, idx: top.idx + 1})
			}
			return entry, true
		case Stalled:
			// Stalled never blocks what comes after it: advance to the
			// next nonce and let it re-compete for priority in the heap,
			// the same as a freshly considered entry would.
			if top.idx+1 < len(entries) {
				heap.Push(&it.h, pendingItem{sender: top.sender, idx: top.idx + 1})
			}
		default: // Future
			// A gap blocks every remaining entry of this sender; drop it
			// from consideration instead of pushing a successor.
		}
	}
	return nil, false
}

// Collect drains the iterator into a slice, in priority order. Intended
// for tests and for hosts that want the whole pending set at once rather
// than a streaming cursor.
func (it *PendingIterator) Collect() []*QueueEntry {
	var out []*QueueEntry
	for {
		entry, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, entry)
	}
}
