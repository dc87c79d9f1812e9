// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpool

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
)

// txBuilder is a fluent fixture for constructing BasicTx values in tests,
// mirroring the pattern of a builder with chained setters and a terminal
// new()/build() call.
type txBuilder struct {
	sender   uint64
	nonce    uint64
	gas      uint64
	gasPrice int64
	memUsage uint64
}

func newTxBuilder() txBuilder {
	return txBuilder{gas: 21_000, gasPrice: 1}
}

func (b txBuilder) withSender(n uint64) txBuilder   { b.sender = n; return b }
func (b txBuilder) withNonce(n uint64) txBuilder    { b.nonce = n; return b }
func (b txBuilder) withGas(n uint64) txBuilder      { b.gas = n; return b }
func (b txBuilder) withGasPrice(n int64) txBuilder  { b.gasPrice = n; return b }
func (b txBuilder) withMemUsage(n uint64) txBuilder { b.memUsage = n; return b }

func (b txBuilder) build() *BasicTx {
	sender := common.BigToAddress(new(big.Int).SetUint64(b.sender))
	price := uint256.NewInt(uint64(b.gasPrice))
	return NewBasicTx(sender, b.nonce, b.gas, price, b.memUsage)
}
