// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package txpoolrpc exposes a txpool.Pool over JSON-RPC 2.0 for queries
// and mutation, and over a websocket feed for lifecycle events, so a
// host can run the pool behind a small standalone daemon rather than
// embedding it directly.
package txpoolrpc

import (
	"encoding/hex"
	"net/http"

	"github.com/gorilla/rpc"
	"github.com/gorilla/rpc/json2"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/log"
	"github.com/luxfi/txpool/core/txpool"
)

// Service is the gorilla/rpc receiver exposing Pool operations as
// JSON-RPC 2.0 methods. Method names are exported as "Service.<Name>"
// per gorilla/rpc's convention.
type Service struct {
	pool *txpool.Pool
}

// NewHandler builds an http.Handler serving Service's methods as
// JSON-RPC 2.0 at a single endpoint, using gorilla/rpc's json2 codec.
func NewHandler(pool *txpool.Pool) (http.Handler, error) {
	server := rpc.NewServer()
	server.RegisterCodec(json2.NewCodec(), "application/json")
	if err := server.RegisterService(&Service{pool: pool}, "Service"); err != nil {
		return nil, err
	}
	return server, nil
}

// LightStatusArgs takes no parameters; it exists so gorilla/rpc's
// reflection based dispatch has a concrete args type to decode into.
type LightStatusArgs struct{}

// LightStatusReply mirrors txpool.LightStatus for JSON-RPC transport.
type LightStatusReply struct {
	Count       int    `json:"count"`
	MemUsage    uint64 `json:"memUsage"`
	SenderCount int    `json:"senderCount"`
}

// LightStatus reports the pool's cached occupancy counters.
func (s *Service) LightStatus(r *http.Request, args *LightStatusArgs, reply *LightStatusReply) error {
	st := s.pool.LightStatus()
	reply.Count = st.Count
	reply.MemUsage = st.MemUsage
	reply.SenderCount = st.SenderCount
	return nil
}

// StatusArgs supplies the on-chain expected nonce for every sender the
// caller wants classified; senders absent from NextNonce are treated as
// expecting nonce zero, matching txpool.NewFixedNonceReadiness(0) for any
// address not explicitly listed.
type StatusArgs struct {
	NextNonce map[string]uint64 `json:"nextNonce"`
}

// StatusReply mirrors txpool.Status for JSON-RPC transport.
type StatusReply struct {
	Stalled     int `json:"stalled"`
	Pending     int `json:"pending"`
	Future      int `json:"future"`
	SenderCount int `json:"senderCount"`
}

// Status reports the pool's readiness-classified occupancy.
func (s *Service) Status(r *http.Request, args *StatusArgs, reply *StatusReply) error {
	expected := make(map[common.Address]uint64, len(args.NextNonce))
	for addr, nonce := range args.NextNonce {
		expected[common.HexToAddress(addr)] = nonce
	}
	readiness := txpool.NewNonceReadiness(func(sender common.Address) uint64 {
		return expected[sender]
	})
	st := s.pool.Status(readiness)
	reply.Stalled = st.Stalled
	reply.Pending = st.Pending
	reply.Future = st.Future
	reply.SenderCount = st.SenderCount
	return nil
}

// RemoveArgs identifies a transaction to cancel by its hex-encoded hash.
// Invalid marks the removal as the host having determined the
// transaction can never be included, rather than a plain cancellation.
type RemoveArgs struct {
	Hash    string `json:"hash"`
	Invalid bool   `json:"invalid"`
}

// RemoveReply reports whether the removal actually happened.
type RemoveReply struct {
	Removed bool `json:"removed"`
}

// Remove cancels the pooled transaction with the given hash.
func (s *Service) Remove(r *http.Request, args *RemoveArgs, reply *RemoveReply) error {
	raw, err := hex.DecodeString(trimHexPrefix(args.Hash))
	if err != nil {
		return err
	}
	reply.Removed = s.pool.Remove(common.BytesToHash(raw), args.Invalid)
	return nil
}

// ClearArgs takes no parameters.
type ClearArgs struct{}

// ClearReply is empty; Clear either succeeds or the RPC call itself
// errors.
type ClearReply struct{}

// Clear empties the pool.
func (s *Service) Clear(r *http.Request, args *ClearArgs, reply *ClearReply) error {
	s.pool.Clear()
	return nil
}

// CullArgs supplies the on-chain expected nonce for every sender the
// caller wants reclassified; senders absent from NextNonce are skipped
// entirely rather than assumed to expect nonce zero.
type CullArgs struct {
	NextNonce map[string]uint64 `json:"nextNonce"`
}

// CullReply reports how many transactions the sweep removed.
type CullReply struct {
	Removed int `json:"removed"`
}

// Cull reclassifies the named senders' queues against their supplied
// next-expected nonce and removes whatever falls Stalled.
func (s *Service) Cull(r *http.Request, args *CullArgs, reply *CullReply) error {
	senders := make([]common.Address, 0, len(args.NextNonce))
	expected := make(map[common.Address]uint64, len(args.NextNonce))
	for addr, nonce := range args.NextNonce {
		a := common.HexToAddress(addr)
		senders = append(senders, a)
		expected[a] = nonce
	}
	readiness := txpool.NewNonceReadiness(func(sender common.Address) uint64 {
		return expected[sender]
	})
	reply.Removed = s.pool.Cull(senders, readiness)
	return nil
}

func trimHexPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}

var logger = log.New("module", "txpoolrpc")
