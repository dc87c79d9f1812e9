// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpool_test

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/txpool/core/txpool"
	ginkgo "github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func tx(sender, nonce uint64, gasPrice int64) *txpool.BasicTx {
	addr := common.BigToAddress(new(big.Int).SetUint64(sender))
	price := uint256.NewInt(uint64(gasPrice))
	return txpool.NewBasicTx(addr, nonce, 21_000, price, 1)
}

var _ = ginkgo.Describe("Pool", func() {
	var p *txpool.Pool

	ginkgo.BeforeEach(func() {
		p = txpool.New(txpool.DefaultOptions(), nil, "")
	})

	ginkgo.Describe("admission", func() {
		ginkgo.It("accepts a fresh transaction", func() {
			gomega.Expect(p.Import(tx(0, 0, 1))).To(gomega.Succeed())
			gomega.Expect(p.LightStatus().Count).To(gomega.Equal(1))
		})

		ginkgo.It("rejects an exact duplicate", func() {
			t := tx(0, 0, 1)
			gomega.Expect(p.Import(t)).To(gomega.Succeed())
			gomega.Expect(p.Import(t)).To(gomega.MatchError(txpool.ErrAlreadyImported))
		})

		ginkgo.It("replaces a same-nonce entry on a higher gas price", func() {
			low := tx(0, 0, 1)
			high := tx(0, 0, 2)
			gomega.Expect(p.Import(low)).To(gomega.Succeed())
			gomega.Expect(p.Import(high)).To(gomega.Succeed())

			got, ok := p.Get(high.Hash())
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(got.Hash()).To(gomega.Equal(high.Hash()))
		})

		ginkgo.It("rejects a same-nonce entry on a lower gas price", func() {
			high := tx(0, 0, 2)
			low := tx(0, 0, 1)
			gomega.Expect(p.Import(high)).To(gomega.Succeed())
			gomega.Expect(p.Import(low)).To(gomega.MatchError(txpool.ErrTooCheapToEnter))
		})
	})

	ginkgo.Describe("capacity", func() {
		ginkgo.It("evicts the globally cheapest entry once over MaxCount", func() {
			opts := txpool.DefaultOptions()
			opts.MaxCount = 1
			p = txpool.New(opts, nil, "")

			cheap := tx(0, 0, 1)
			pricey := tx(1, 0, 2)
			gomega.Expect(p.Import(cheap)).To(gomega.Succeed())
			gomega.Expect(p.Import(pricey)).To(gomega.Succeed())

			gomega.Expect(p.LightStatus().Count).To(gomega.Equal(1))
			_, ok := p.Get(pricey.Hash())
			gomega.Expect(ok).To(gomega.BeTrue())
		})

		ginkgo.It("evicts its own highest nonce first under a per-sender cap", func() {
			opts := txpool.DefaultOptions()
			opts.MaxPerSender = 1
			p = txpool.New(opts, nil, "")

			low := tx(0, 0, 1)
			higherNonceHigherPrice := tx(0, 1, 2)
			gomega.Expect(p.Import(low)).To(gomega.Succeed())
			gomega.Expect(p.Import(higherNonceHigherPrice)).To(gomega.MatchError(txpool.ErrTooCheapToEnter))
			gomega.Expect(p.LightStatus().Count).To(gomega.Equal(1))
		})
	})

	ginkgo.Describe("pending", func() {
		ginkgo.It("merges senders by descending priority and stops at a nonce gap", func() {
			gomega.Expect(p.Import(tx(0, 0, 10))).To(gomega.Succeed())
			s1 := tx(1, 0, 9)
			gomega.Expect(p.Import(s1)).To(gomega.Succeed())
			gap := tx(2, 5, 1)
			gomega.Expect(p.Import(gap)).To(gomega.Succeed())

			pending := p.Pending(txpool.NewFixedNonceReadiness(0)).Collect()
			hashes := make([]common.Hash, len(pending))
			for i, e := range pending {
				hashes[i] = e.Tx.Hash()
			}
			gomega.Expect(hashes).To(gomega.Equal([]common.Hash{
				tx(0, 0, 10).Hash(),
				s1.Hash(),
			}))
		})
	})

	ginkgo.Describe("cull", func() {
		ginkgo.It("removes stalled transactions and fires Mined", func() {
			gomega.Expect(p.Import(tx(0, 0, 1))).To(gomega.Succeed())
			gomega.Expect(p.Import(tx(1, 0, 1))).To(gomega.Succeed())

			removed := p.Cull(nil, txpool.NewFixedNonceReadiness(1))
			gomega.Expect(removed).To(gomega.Equal(2))
			gomega.Expect(p.LightStatus().Count).To(gomega.Equal(0))
		})
	})
})
