// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpool

import (
	"sync"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/log"
	"github.com/prometheus/client_golang/prometheus"
)

// Pool is an in-memory, bounded, per-sender-ordered transaction pool. The
// zero value is not usable; build one with New. A Pool is safe for
// concurrent use.
type Pool struct {
	mu   sync.RWMutex
	opts Options

	queues   map[common.Address]*SenderQueue
	byHash   map[common.Hash]common.Address
	worst    *worstIndex
	count    int
	memUsage uint64

	dedupe   *dedupeFilter
	evicted  *evictedCache
	limiters *senderLimiters
	local    *localSenders
	metrics  *poolMetrics
}

// New builds a Pool from opts. registry may be nil to skip prometheus
// registration (tests typically pass nil); namespace prefixes every
// metric name and may be empty.
func New(opts Options, registry prometheus.Registerer, namespace string) *Pool {
	opts = opts.withDefaults()
	return &Pool{
		opts:     opts,
		queues:   make(map[common.Address]*SenderQueue),
		byHash:   make(map[common.Hash]common.Address),
		worst:    newWorstIndex(),
		dedupe:   newDedupeFilter(opts.DedupeExpectedItems),
		evicted:  newEvictedCache(opts.EvictedCacheSize),
		limiters: newSenderLimiters(opts.RateLimit),
		local:    newLocalSenders(),
		metrics:  newPoolMetrics(registry, namespace),
	}
}

// MarkLocal flags sender as a locally controlled account. Import exempts
// a local sender from the per-sender ingress rate limiter; scoring,
// capacity eviction, and Cull treat it like any other sender.
func (p *Pool) MarkLocal(sender common.Address) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.local.mark(sender)
}

// IsLocal reports whether sender was previously marked local.
func (p *Pool) IsLocal(sender common.Address) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.local.isLocal(sender)
}

// Import attempts to admit tx into the pool. It returns nil on success
// (as a fresh entry or by replacing a same-nonce entry), or an error
// identifying why tx was refused; errors.Is against ErrAlreadyImported,
// ErrTooCheapToEnter, or ErrRateLimited distinguishes the reasons.
func (p *Pool) Import(tx VerifiedTransaction) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	hash := tx.Hash()
	sender := tx.Sender()

	// The bloom filter only ever short-circuits the common case of a
	// genuinely new hash (a negative answer is authoritative); a positive
	// answer falls through to the real map lookup below, so the filter
	// never itself decides AlreadyImported.
	if p.dedupe.maybeContains(hash) {
		if _, exists := p.byHash[hash]; exists {
			return alreadyImported(hash)
		}
	}
	if !p.local.isLocal(sender) && !p.limiters.allow(sender) {
		p.metrics.rejected.WithLabelValues("rate_limited").Inc()
		p.opts.Listener.Rejected(tx, ErrRateLimited)
		return ErrRateLimited
	}

	queue, ok := p.queues[sender]
	if !ok {
		queue = newSenderQueue(sender)
		p.queues[sender] = queue
	}

	old, decision := queue.insert(tx, p.opts.Scoring)
	if decision == KeepExisting {
		err := tooCheapToEnter(hash)
		p.recordDiscard(tx, err)
		p.metrics.rejected.WithLabelValues("too_cheap").Inc()
		p.opts.Listener.Rejected(tx, err)
		return err
	}

	if old != nil {
		delete(p.byHash, old.Hash())
		p.memUsage -= old.MemUsage()
	} else {
		p.count++
	}
	p.byHash[hash] = sender
	p.dedupe.add(hash)
	p.memUsage += tx.MemUsage()
	p.worst.update(sender, queue.worst())

	if old != nil {
		// A same-nonce replacement always lands: it doesn't change count,
		// and re-running capacity enforcement here could evict the entry
		// that was already validly pooled before this call, which would
		// turn a replace into a net loss rather than a substitution.
		p.metrics.replaced.Inc()
	} else {
		if !p.admitWithinCapacity(tx, queue) {
			// Rolled back by admitWithinCapacity: tx itself was the worst
			// entry once capacity was enforced, so it was evicted right
			// back out. Report that as a rejection rather than a silent
			// success.
			err := tooCheapToEnter(hash)
			p.recordDiscard(tx, err)
			p.metrics.rejected.WithLabelValues("over_capacity").Inc()
			p.opts.Listener.Rejected(tx, err)
			return err
		}
		p.metrics.imported.Inc()
	}
	p.metrics.size.Set(float64(p.count))
	p.metrics.memUsage.Set(float64(p.memUsage))
	p.opts.Listener.Added(tx, old)
	return nil
}

// admitWithinCapacity enforces MaxPerSender, then MaxCount/MaxMemUsage,
// evicting the lowest-priority entries in the pool (attributing the
// eviction to tx) until every bound is satisfied. It returns false if tx
// itself ended up being the entry evicted to satisfy a bound, in which
// case the caller should treat the whole Import as rejected.
func (p *Pool) admitWithinCapacity(tx VerifiedTransaction, senderQueue *SenderQueue) bool {
	if p.opts.MaxPerSender > 0 {
		for senderQueue.Len() > p.opts.MaxPerSender {
			victim := senderQueue.tail()
			if victim.Tx.Hash() == tx.Hash() {
				p.evict(tx.Sender(), victim, tx)
				return false
			}
			p.evict(tx.Sender(), victim, tx)
		}
	}

	for p.overCapacity() {
		sender, worst := p.worst.worstSender()
		if worst == nil {
			break
		}
		if worst.Tx.Hash() == tx.Hash() {
			p.evict(sender, worst, tx)
			return false
		}
		p.evict(sender, worst, tx)
	}
	return true
}

func (p *Pool) overCapacity() bool {
	if p.opts.MaxCount > 0 && p.count > p.opts.MaxCount {
		return true
	}
	if p.opts.MaxMemUsage > 0 && p.memUsage > p.opts.MaxMemUsage {
		return true
	}
	return false
}

// evict removes entry's transaction from sender's queue, attributing the
// removal to by (the admission that forced it out), and fires Dropped.
func (p *Pool) evict(sender common.Address, entry *QueueEntry, by VerifiedTransaction) {
	queue := p.queues[sender]
	queue.removeHash(entry.Tx.Hash(), p.opts.Scoring)
	p.forgetLocked(sender, entry.Tx)
	if entry.Tx.Hash() != by.Hash() {
		p.metrics.dropped.Inc()
		p.opts.Listener.Dropped(entry.Tx, by)
	}
	p.recordDiscard(entry.Tx, nil)
}

// forgetLocked removes tx's hash bookkeeping and, if its sender's queue
// is now empty, the queue itself. Callers must hold p.mu.
func (p *Pool) forgetLocked(sender common.Address, tx VerifiedTransaction) {
	delete(p.byHash, tx.Hash())
	p.count--
	p.memUsage -= tx.MemUsage()

	queue, ok := p.queues[sender]
	if !ok {
		// An earlier call in the same batch removal (Cull) already
		// dropped the emptied queue and its index entries.
		return
	}
	if queue.isEmpty() {
		delete(p.queues, sender)
		p.worst.update(sender, nil)
		p.limiters.forget(sender)
	} else {
		p.worst.update(sender, queue.worst())
	}
}

// recordDiscard remembers why tx left (or never entered) the pool in the
// recently-evicted LRU, purely for a host's observability: reason is nil
// for a capacity eviction or an explicit Cancelled/Invalid removal, and
// the matching ImportError for a TooCheapToEnter rejection. Nothing in
// Import consults this cache when making an admission decision.
func (p *Pool) recordDiscard(tx VerifiedTransaction, reason error) {
	p.evicted.record(tx.Hash(), reason)
}

// RecentDiscard reports the reason (if any) the pool most recently
// dropped, rejected, cancelled, or invalidated hash for, as recorded in
// the bounded recently-evicted cache. It is purely observational; ok is
// false once the cache has aged the entry out or never saw it.
func (p *Pool) RecentDiscard(hash common.Hash) (reason error, ok bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.evicted.reasonFor(hash)
}

// Remove cancels the pooled transaction with the given hash by explicit
// host request. invalid distinguishes why the host is removing it: false
// fires Cancelled (the host simply no longer wants it pooled), true
// fires Invalid (the host has determined the transaction can never be
// included, e.g. superseded by a conflicting transaction it observed
// on chain). It reports whether a transaction was actually removed.
func (p *Pool) Remove(hash common.Hash, invalid bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	sender, ok := p.byHash[hash]
	if !ok {
		return false
	}
	queue := p.queues[sender]
	tx := queue.removeHash(hash, p.opts.Scoring)
	if tx == nil {
		return false
	}
	p.forgetLocked(sender, tx)
	p.metrics.size.Set(float64(p.count))
	p.metrics.memUsage.Set(float64(p.memUsage))
	if invalid {
		p.metrics.invalidated.Inc()
		p.recordDiscard(tx, nil)
		p.opts.Listener.Invalid(tx)
	} else {
		p.metrics.cancelled.Inc()
		p.recordDiscard(tx, nil)
		p.opts.Listener.Cancelled(tx)
	}
	return true
}

// Clear empties the pool entirely. Every remaining transaction is
// reported Dropped, since clearing discards them the same way capacity
// eviction does rather than by a host decision about any one of them.
func (p *Pool) Clear() {
	p.mu.Lock()
	removed := make([]VerifiedTransaction, 0, p.count)
	for _, queue := range p.queues {
		for _, e := range queue.snapshot() {
			removed = append(removed, e.Tx)
		}
	}
	p.queues = make(map[common.Address]*SenderQueue)
	p.byHash = make(map[common.Hash]common.Address)
	p.worst = newWorstIndex()
	p.count = 0
	p.memUsage = 0
	p.limiters.reset()
	p.metrics.size.Set(0)
	p.metrics.memUsage.Set(0)
	for _, tx := range removed {
		p.recordDiscard(tx, nil)
	}
	p.mu.Unlock()

	for _, tx := range removed {
		p.opts.Listener.Dropped(tx, nil)
	}
}

// stalledBoundary walks queue's entries in ascending nonce order and
// returns the nonce threshold one past the leading run of Stalled
// entries, suited to removeStalledBelow. any is false if queue is empty,
// in which case there is nothing to cull.
func stalledBoundary(queue *SenderQueue, readiness Readiness) (next uint64, any bool) {
	entries := queue.entries
	if len(entries) == 0 {
		return 0, false
	}
	for _, e := range entries {
		if readiness.Classify(e.Tx) != Stalled {
			return e.Tx.Nonce(), true
		}
	}
	return entries[len(entries)-1].Tx.Nonce() + 1, true
}

// Cull walks the queue of each sender in senders (or of every sender, if
// senders is nil) in ascending nonce order against readiness, and removes
// the leading run of entries readiness considers Stalled: their nonce has
// been consumed on chain, so they are reported Mined. Entries from the
// first non-Stalled one onward are left in place. Cull is how a host
// informs the pool that a new block landed and the relevant senders'
// on-chain nonces have advanced. It returns the number of transactions
// removed.
func (p *Pool) Cull(senders []common.Address, readiness Readiness) int {
	p.mu.Lock()

	targets := senders
	if targets == nil {
		targets = make([]common.Address, 0, len(p.queues))
		for sender := range p.queues {
			targets = append(targets, sender)
		}
	}

	var removed []VerifiedTransaction
	for _, sender := range targets {
		queue, ok := p.queues[sender]
		if !ok {
			continue
		}
		next, any := stalledBoundary(queue, readiness)
		if !any {
			continue
		}
		for _, tx := range queue.removeStalledBelow(next, p.opts.Scoring) {
			removed = append(removed, tx)
			p.forgetLocked(sender, tx)
		}
	}
	p.metrics.size.Set(float64(p.count))
	p.metrics.memUsage.Set(float64(p.memUsage))
	p.mu.Unlock()

	for _, tx := range removed {
		p.metrics.mined.Inc()
		p.opts.Listener.Mined(tx)
	}
	return len(removed)
}

// LightStatus is the cheap subset of pool occupancy, read straight from
// cached counters with no per-entry walk, suited to a hot-path health
// check or metrics scrape.
type LightStatus struct {
	Count       int
	MemUsage    uint64
	SenderCount int
}

// LightStatus returns the cheap, cached subset of pool occupancy.
func (p *Pool) LightStatus() LightStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return LightStatus{Count: p.count, MemUsage: p.memUsage, SenderCount: len(p.queues)}
}

// Status classifies every pooled transaction against readiness and
// tallies the result. Per sender, walking ascending nonce: entries
// readiness calls Stalled count toward Stalled, entries it calls Ready
// count toward Pending, and the first Future entry converts every
// remaining entry of that sender (including any later nonce that would
// otherwise have been Ready, since a gap blocks everything behind it) to
// Future. Unlike LightStatus this walks every entry, so it costs O(count).
type Status struct {
	Stalled     int
	Pending     int
	Future      int
	SenderCount int
}

// Status returns a readiness-classified snapshot of pool occupancy.
func (p *Pool) Status(readiness Readiness) Status {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var st Status
	st.SenderCount = len(p.queues)
	for _, queue := range p.queues {
		blocked := false
		for _, e := range queue.entries {
			if blocked {
				st.Future++
				continue
			}
			switch readiness.Classify(e.Tx) {
			case Stalled:
				st.Stalled++
			case Ready:
				st.Pending++
			default: // Future
				st.Future++
				blocked = true
			}
		}
	}
	return st
}

// Pending builds a lazy, priority-ordered iterator over every Ready
// transaction in the pool, given readiness. The iterator is built from a
// point-in-time snapshot, taken under the pool's lock, and can be
// consumed after the lock is released without observing subsequent
// mutation.
func (p *Pool) Pending(readiness Readiness) *PendingIterator {
	p.mu.RLock()
	defer p.mu.RUnlock()

	snapshot := make(map[common.Address][]*QueueEntry, len(p.queues))
	for sender, queue := range p.queues {
		snapshot[sender] = queue.snapshot()
	}
	return newPendingIterator(snapshot, readiness)
}

// Get returns the pooled transaction with the given hash, if any.
func (p *Pool) Get(hash common.Hash) (VerifiedTransaction, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	sender, ok := p.byHash[hash]
	if !ok {
		return nil, false
	}
	queue := p.queues[sender]
	for _, e := range queue.entries {
		if e.Tx.Hash() == hash {
			return e.Tx, true
		}
	}
	return nil, false
}

// SenderQueueLen reports how many transactions a given sender currently
// has pooled.
func (p *Pool) SenderQueueLen(sender common.Address) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	queue, ok := p.queues[sender]
	if !ok {
		return 0
	}
	return queue.Len()
}

func init() {
	// Ensure the package-level terminal logger is initialized exactly
	// once; callers that want their own handler call log.SetDefault
	// before importing a pool.
	_ = log.Root()
}
