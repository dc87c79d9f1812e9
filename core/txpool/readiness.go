// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpool

import "github.com/luxfi/geth/common"

// Readiness classifies a queued transaction during iteration. Calls occur
// in ascending nonce order within a single sender, and a Readiness value
// may rely on that order (the default implementation tracks an expected
// nonce and advances it as it observes Ready entries). A Readiness must
// not mutate pool state.
type Readiness interface {
	// Classify returns whether tx is Stalled, Ready, or Future given
	// whatever account state this Readiness was constructed with.
	Classify(tx VerifiedTransaction) Readi
}

// Readi is the three-way classification a Readiness produces for a single
// transaction.
type Readi int

const (
	// Stalled transactions have a nonce below the account's current
	// expected nonce: already applied by the chain.
	Stalled Readi = iota
	// Ready transactions have a nonce equal to the expected nonce and are
	// eligible for inclusion now.
	Ready
	// Future transactions are blocked by a nonce gap in their sender's
	// sequence.
	Future
)

func (r Readi) String() string {
	switch r {
	case Stalled:
		return "stalled"
	case Ready:
		return "ready"
	case Future:
		return "future"
	default:
		return "unknown"
	}
}

// nonceReadiness is the default Readiness: a transaction is Stalled if its
// nonce is below the expected nonce, Ready if it equals the expected
// nonce (after which the expectation advances by one), and Future
// otherwise.
type nonceReadiness struct {
	expected map[common.Address]uint64
	initial  func(sender common.Address) uint64
}

// NewNonceReadiness builds the default Readiness from a function mapping a
// sender to its current on-chain expected nonce. The returned Readiness is
// stateful: it remembers, per sender, the nonce it expects next, seeded
// lazily from initial on first sight of that sender.
func NewNonceReadiness(initial func(sender common.Address) uint64) Readiness {
	return &nonceReadiness{
		expected: make(map[common.Address]uint64),
		initial:  initial,
	}
}

func (n *nonceReadiness) Classify(tx VerifiedTransaction) Readi {
	sender := tx.Sender()
	expected, ok := n.expected[sender]
	if !ok {
		expected = n.initial(sender)
	}
	switch {
	case tx.Nonce() < expected:
		return Stalled
	case tx.Nonce() == expected:
		n.expected[sender] = expected + 1
		return Ready
	default:
		n.expected[sender] = expected
		return Future
	}
}

// NewFixedNonceReadiness builds a Readiness that expects nonce n from
// every sender on first sight, regardless of identity. Convenient for
// tests and for simple fixed-threshold hosts.
func NewFixedNonceReadiness(n uint64) Readiness {
	return NewNonceReadiness(func(common.Address) uint64 { return n })
}
