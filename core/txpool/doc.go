// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package txpool implements an in-memory, bounded, per-sender-ordered
// transaction pool for a blockchain-style node. It accepts candidate
// transactions, deduplicates and bounds them by count/memory/per-sender
// quota, orders them for block inclusion, and notifies a Listener about
// lifecycle events (added, replaced, rejected, dropped, cancelled,
// invalid, mined).
//
// The pool does not verify transactions, recover signatures, serialize
// or broadcast anything, or track chain state itself: those concerns
// belong to the host, which supplies VerifiedTransaction values and
// drives Cull when new blocks land. Ordering and admission policy are
// supplied by the pluggable Scoring and Readiness interfaces.
package txpool
