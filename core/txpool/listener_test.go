// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// recordingListener records the name of each event it receives, in order,
// for assertions that the exact sequence of lifecycle notifications a
// scenario produces matches expectation.
type recordingListener struct {
	events []string
}

var _ Listener = (*recordingListener)(nil)

func (l *recordingListener) Added(VerifiedTransaction, VerifiedTransaction) {
	l.events = append(l.events, "added")
}

func (l *recordingListener) Rejected(VerifiedTransaction, error) {
	l.events = append(l.events, "rejected")
}

func (l *recordingListener) Dropped(VerifiedTransaction, VerifiedTransaction) {
	l.events = append(l.events, "dropped")
}

func (l *recordingListener) Cancelled(VerifiedTransaction) {
	l.events = append(l.events, "cancelled")
}

func (l *recordingListener) Invalid(VerifiedTransaction) {
	l.events = append(l.events, "invalid")
}

func (l *recordingListener) Mined(VerifiedTransaction) {
	l.events = append(l.events, "mined")
}

// TestListenerInsertSequence walks a single sender through: a fresh
// insert, a same-nonce replacement, a same-nonce rejection, a clear, and
// then a cross-sender eviction followed by a rejection against the new
// occupant, asserting the exact event sequence at each step.
func TestListenerInsertSequence(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxPerSender = 1
	opts.MaxCount = 1
	rec := &recordingListener{}
	opts.Listener = rec
	p := New(opts, nil, "")

	require.NoError(t, p.Import(newTxBuilder().withNonce(0).withGasPrice(1).build()))
	require.Equal(t, []string{"added"}, rec.events)

	require.NoError(t, p.Import(newTxBuilder().withNonce(0).withGasPrice(2).build()))
	require.Equal(t, []string{"added", "added"}, rec.events)

	require.Error(t, p.Import(newTxBuilder().withNonce(0).withGasPrice(1).build()))
	require.Equal(t, []string{"added", "added", "rejected"}, rec.events)

	p.Clear()
	rec.events = nil

	require.NoError(t, p.Import(newTxBuilder().withNonce(0).withGasPrice(1).build()))
	require.Equal(t, []string{"added"}, rec.events)

	// A higher-priced entry from a second sender forces the first
	// sender's occupant out under the pool-wide MaxCount of 1.
	require.NoError(t, p.Import(newTxBuilder().withSender(1).withNonce(0).withGasPrice(2).build()))
	require.Equal(t, []string{"added", "dropped", "added"}, rec.events)

	// A third sender with a lower price than the current occupant is
	// rejected outright rather than evicting anything.
	require.Error(t, p.Import(newTxBuilder().withSender(2).withNonce(0).withGasPrice(1).build()))
	require.Equal(t, []string{"added", "dropped", "added", "rejected"}, rec.events)
}

func TestListenerRemoveSequence(t *testing.T) {
	rec := &recordingListener{}
	opts := DefaultOptions()
	opts.Listener = rec
	p := New(opts, nil, "")

	tx := newTxBuilder().withNonce(0).build()
	require.NoError(t, p.Import(tx))
	require.True(t, p.Remove(tx.Hash(), false))
	require.Equal(t, []string{"added", "cancelled"}, rec.events)
}

func TestListenerClearSequence(t *testing.T) {
	rec := &recordingListener{}
	opts := DefaultOptions()
	opts.Listener = rec
	p := New(opts, nil, "")

	require.NoError(t, p.Import(newTxBuilder().withNonce(0).build()))
	require.NoError(t, p.Import(newTxBuilder().withSender(1).withNonce(0).build()))
	p.Clear()

	require.Len(t, rec.events, 4)
	require.Equal(t, "added", rec.events[0])
	require.Equal(t, "added", rec.events[1])
	require.ElementsMatch(t, []string{"dropped", "dropped"}, rec.events[2:])
}

func TestListenerCullSequence(t *testing.T) {
	rec := &recordingListener{}
	opts := DefaultOptions()
	opts.Listener = rec
	p := New(opts, nil, "")

	require.NoError(t, p.Import(newTxBuilder().withNonce(0).build()))
	require.NoError(t, p.Import(newTxBuilder().withSender(1).withNonce(0).build()))
	require.Equal(t, []string{"added", "added"}, rec.events)

	removed := p.Cull(nil, NewFixedNonceReadiness(1))
	require.Equal(t, 2, removed)
	require.Equal(t, []string{"added", "added", "mined", "mined"}, rec.events)
}
