// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpool

import (
	"container/heap"

	"github.com/luxfi/geth/common"
)

// worstIndex tracks, for every sender with at least one pooled
// transaction, that sender's lowest-priority entry, and exposes the
// global worst of those in O(1). Pool calls update whenever a sender's
// own worst entry might have changed (insert, remove, replace), keeping
// the index in O(log n) per update rather than rescanning every sender
// on every eviction.
type worstIndex struct {
	items []*worstHeapItem
	pos   map[common.Address]int
}

type worstHeapItem struct {
	sender common.Address
	entry  *QueueEntry
	index  int
}

func newWorstIndex() *worstIndex {
	return &worstIndex{pos: make(map[common.Address]int)}
}

func (w *worstIndex) Len() int { return len(w.items) }

func (w *worstIndex) Less(i, j int) bool {
	return comparePriority(w.items[i].entry, w.items[j].entry) < 0
}

func (w *worstIndex) Swap(i, j int) {
	w.items[i], w.items[j] = w.items[j], w.items[i]
	w.items[i].index = i
	w.items[j].index = j
	w.pos[w.items[i].sender] = i
	w.pos[w.items[j].sender] = j
}

func (w *worstIndex) Push(x any) {
	item := x.(*worstHeapItem)
	item.index = len(w.items)
	w.pos[item.sender] = item.index
	w.items = append(w.items, item)
}

func (w *worstIndex) Pop() any {
	old := w.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	w.items = old[:n-1]
	delete(w.pos, item.sender)
	return item
}

// update records entry as sender's current worst queued transaction. A
// nil entry means sender no longer has any transactions pooled and is
// dropped from the index entirely.
func (w *worstIndex) update(sender common.Address, entry *QueueEntry) {
	i, tracked := w.pos[sender]
	if entry == nil {
		if tracked {
			heap.Remove(w, i)
		}
		return
	}
	if tracked {
		w.items[i].entry = entry
		heap.Fix(w, i)
		return
	}
	heap.Push(w, &worstHeapItem{sender: sender, entry: entry})
}

// worst returns the globally lowest-priority pooled entry, or nil if the
// pool holds nothing.
func (w *worstIndex) worst() *QueueEntry {
	if len(w.items) == 0 {
		return nil
	}
	return w.items[0].entry
}

// worstSender returns the sender owning the globally lowest-priority
// entry, alongside that entry. The zero address and a nil entry are
// returned when the pool holds nothing.
func (w *worstIndex) worstSender() (common.Address, *QueueEntry) {
	if len(w.items) == 0 {
		return common.Address{}, nil
	}
	return w.items[0].sender, w.items[0].entry
}
