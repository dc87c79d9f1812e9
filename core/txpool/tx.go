// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpool

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/crypto"
	"github.com/luxfi/geth/common"
)

// VerifiedTransaction is the pool's view of a candidate transaction. It is
// opaque beyond these accessors: verification, signature recovery, and
// serialization all happen upstream of the pool.
type VerifiedTransaction interface {
	// Hash is the transaction's content-addressed, globally unique identifier.
	Hash() common.Hash
	// Sender is the account whose nonce stream this transaction belongs to.
	Sender() common.Address
	// Nonce is the per-sender ordering key.
	Nonce() uint64
	// Gas is the transaction's consumption toward a block gas limit.
	Gas() uint64
	// MemUsage is the transaction's footprint for memory-bound capacity.
	MemUsage() uint64
	// GasPrice is the scalar the default Scoring feeds into its score.
	GasPrice() *uint256.Int
}

// SharedTransaction is a handle to a VerifiedTransaction shared between the
// pool's internal structures and Listener callbacks. The pool holds the
// authoritative reference; a SharedTransaction handed to a Listener must
// not be retained past the callback that received it, since the pool may
// drop the underlying entry immediately afterwards.
type SharedTransaction struct {
	VerifiedTransaction
}

func share(tx VerifiedTransaction) *SharedTransaction {
	if tx == nil {
		return nil
	}
	return &SharedTransaction{VerifiedTransaction: tx}
}

// BasicTx is a minimal VerifiedTransaction implementation for hosts and
// tests that do not already have a verified-transaction type of their own.
type BasicTx struct {
	TxHash     common.Hash
	TxSender   common.Address
	TxNonce    uint64
	TxGas      uint64
	TxMemUsage uint64
	TxGasPrice *uint256.Int
}

var _ VerifiedTransaction = (*BasicTx)(nil)

func (t *BasicTx) Hash() common.Hash          { return t.TxHash }
func (t *BasicTx) Sender() common.Address     { return t.TxSender }
func (t *BasicTx) Nonce() uint64              { return t.TxNonce }
func (t *BasicTx) Gas() uint64                { return t.TxGas }
func (t *BasicTx) MemUsage() uint64           { return t.TxMemUsage }
func (t *BasicTx) GasPrice() *uint256.Int     { return t.TxGasPrice }

// NewBasicTx builds a BasicTx and content-addresses it with ComputeHash.
// memUsage defaults to 1 when zero, sizing it in whole-transaction units
// rather than bytes for callers that don't track a finer-grained cost.
func NewBasicTx(sender common.Address, nonce, gas uint64, gasPrice *uint256.Int, memUsage uint64) *BasicTx {
	if memUsage == 0 {
		memUsage = 1
	}
	tx := &BasicTx{
		TxSender:   sender,
		TxNonce:    nonce,
		TxGas:      gas,
		TxMemUsage: memUsage,
		TxGasPrice: gasPrice,
	}
	tx.TxHash = ComputeHash(sender, nonce, gas, gasPrice)
	return tx
}

// ComputeHash derives a content-addressed identifier for a transaction from
// its sender, nonce, gas limit and gas price. The pool itself never calls
// this: hashing is the host's responsibility, provided here for hosts and
// tests that need a cheap stand-in.
func ComputeHash(sender common.Address, nonce, gas uint64, gasPrice *uint256.Int) common.Hash {
	price := uint256.NewInt(0)
	if gasPrice != nil {
		price = gasPrice
	}
	payload := fmt.Sprintf("%s:%d:%d:%s", sender.Hex(), nonce, gas, price.String())
	return crypto.Keccak256Hash([]byte(payload))
}
