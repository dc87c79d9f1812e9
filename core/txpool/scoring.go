// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpool

import "github.com/holiman/uint256"

// Decision is the outcome of Scoring.Choose when a candidate transaction
// collides on nonce with an entry already in a sender's queue.
type Decision int

const (
	// KeepExisting discards the candidate; the existing entry is untouched.
	KeepExisting Decision = iota
	// ReplaceExisting swaps the candidate in for the existing entry.
	ReplaceExisting
	// InsertNew is reserved for schemes that allow more than one entry per
	// nonce; the core Pool treats it the same as KeepExisting, since a
	// SenderQueue never holds two entries at the same nonce.
	InsertNew
)

// QueueEntry is a transaction together with the scalar score Scoring last
// assigned it. SenderQueue and Pool pass slices of *QueueEntry to
// UpdateScores so a Scoring implementation can recompute every score in
// place after a structural change (insert, remove, replace).
type QueueEntry struct {
	Tx    VerifiedTransaction
	Score *uint256.Int
}

// Scoring orders transactions, both within a sender and across senders.
// Implementations must be pure with respect to queue contents; the Pool
// is responsible for calling UpdateScores after every insert, remove, or
// replace.
type Scoring interface {
	// Compare totally orders two transactions from the same sender. The
	// default orders by ascending nonce. Returns <0, 0, or >0 as a < b,
	// a == b, or a > b.
	Compare(a, b VerifiedTransaction) int

	// Choose is consulted when candidate collides on nonce with existing
	// in the same sender's queue.
	Choose(existing, candidate VerifiedTransaction) Decision

	// UpdateScores recomputes the Score field of every entry in entries
	// in place, in response to a structural change to the sender's queue
	// entries belongs to.
	UpdateScores(entries []*QueueEntry)
}

// GasPriceScoring is the default Scoring: transactions from one sender
// order by ascending nonce, a same-nonce collision is won by the higher
// gas price, and the scalar cross-sender score is the gas price itself.
type GasPriceScoring struct{}

var _ Scoring = GasPriceScoring{}

func (GasPriceScoring) Compare(a, b VerifiedTransaction) int {
	switch {
	case a.Nonce() < b.Nonce():
		return -1
	case a.Nonce() > b.Nonce():
		return 1
	default:
		return 0
	}
}

func (GasPriceScoring) Choose(existing, candidate VerifiedTransaction) Decision {
	if candidate.GasPrice().Cmp(existing.GasPrice()) > 0 {
		return ReplaceExisting
	}
	return KeepExisting
}

func (GasPriceScoring) UpdateScores(entries []*QueueEntry) {
	for _, e := range entries {
		e.Score = new(uint256.Int).Set(e.Tx.GasPrice())
	}
}

// comparePriority orders two queue entries for cross-sender purposes
// (global capacity eviction and the pending merge): higher score wins,
// ties broken by ascending sender address then ascending nonce, so the
// ordering is total and deterministic regardless of insertion order.
func comparePriority(a, b *QueueEntry) int {
	if c := a.Score.Cmp(b.Score); c != 0 {
		return c
	}
	as, bs := a.Tx.Sender(), b.Tx.Sender()
	if c := as.Cmp(bs); c != 0 {
		return -c // ascending sender breaks ties, but score ties favor determinism, not priority
	}
	switch {
	case a.Tx.Nonce() < b.Tx.Nonce():
		return 1
	case a.Tx.Nonce() > b.Tx.Nonce():
		return -1
	default:
		return 0
	}
}
