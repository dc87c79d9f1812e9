// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpool

import (
	"sync"

	"github.com/luxfi/geth/common"
	"golang.org/x/time/rate"
)

// ErrRateLimited is returned by Import when the sender has exceeded its
// configured ingress rate and the candidate is refused before any
// capacity or scoring check runs.
var ErrRateLimited = &rateLimitError{}

type rateLimitError struct{}

func (*rateLimitError) Error() string { return "sender rate limited" }

// senderLimiters lazily builds one token-bucket limiter per sender from a
// shared template, so every sender gets an independent budget rather than
// contending over one pool-wide bucket.
type senderLimiters struct {
	mu       sync.Mutex
	template *rate.Limiter
	limiters map[common.Address]*rate.Limiter
}

func newSenderLimiters(template *rate.Limiter) *senderLimiters {
	if template == nil {
		return nil
	}
	return &senderLimiters{
		template: template,
		limiters: make(map[common.Address]*rate.Limiter),
	}
}

// allow reports whether sender may admit one more transaction right now,
// consuming a token if so.
func (s *senderLimiters) allow(sender common.Address) bool {
	if s == nil {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.limiters[sender]
	if !ok {
		l = rate.NewLimiter(s.template.Limit(), s.template.Burst())
		s.limiters[sender] = l
	}
	return l.Allow()
}

// forget drops a sender's limiter once it has no pooled transactions
// left, so a pool that churns through many one-shot senders does not
// accumulate an unbounded limiter map.
func (s *senderLimiters) forget(sender common.Address) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.limiters, sender)
}

// reset drops every tracked sender's limiter, as Pool.Clear does: a fresh
// pool has no senders left to rate-limit, so a reimported sender starts
// with a full bucket rather than whatever state it left behind.
func (s *senderLimiters) reset() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limiters = make(map[common.Address]*rate.Limiter)
}
