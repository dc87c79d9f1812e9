// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpool

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/luxfi/geth/common"
)

// localSenders tracks addresses the host considers "local": accounts it
// controls directly, as opposed to ones only seen via gossiped
// transactions. Import consults it only to exempt a local sender from the
// ingress rate limiter; it otherwise leaves Scoring and cull untouched.
type localSenders struct {
	set mapset.Set[common.Address]
}

func newLocalSenders() *localSenders {
	return &localSenders{set: mapset.NewSet[common.Address]()}
}

func (l *localSenders) mark(sender common.Address) {
	l.set.Add(sender)
}

func (l *localSenders) forget(sender common.Address) {
	l.set.Remove(sender)
}

func (l *localSenders) isLocal(sender common.Address) bool {
	return l.set.Contains(sender)
}

func (l *localSenders) count() int {
	return l.set.Cardinality()
}
