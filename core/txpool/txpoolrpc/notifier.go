// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpoolrpc

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/luxfi/txpool/core/txpool"
)

// event is the wire shape of every lifecycle notification pushed to
// websocket subscribers.
type event struct {
	Kind   string `json:"kind"`
	Hash   string `json:"hash"`
	Sender string `json:"sender"`
	Nonce  uint64 `json:"nonce"`
	Reason string `json:"reason,omitempty"`
}

func eventFor(kind string, tx txpool.VerifiedTransaction, reason error) event {
	e := event{
		Kind:   kind,
		Hash:   tx.Hash().Hex(),
		Sender: tx.Sender().Hex(),
		Nonce:  tx.Nonce(),
	}
	if reason != nil {
		e.Reason = reason.Error()
	}
	return e
}

// Notifier implements txpool.Listener by fanning every lifecycle event
// out to connected websocket clients as a JSON event. Slow or
// disconnected clients are dropped rather than allowed to back-pressure
// the pool: Import and Remove run Listener callbacks with the pool's lock
// held, so Notifier must never block on a client.
type Notifier struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]chan event
}

var _ txpool.Listener = (*Notifier)(nil)

// NewNotifier builds an empty Notifier. Register it as a Pool's
// Options.Listener (or compose it into a txpool.MultiListener alongside
// other listeners) to start pushing events as clients connect.
func NewNotifier() *Notifier {
	return &Notifier{clients: make(map[*websocket.Conn]chan event)}
}

// ServeHTTP upgrades the request to a websocket connection and streams
// events to it until the connection closes.
func (n *Notifier) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := n.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Debug("websocket upgrade failed", "err", err)
		return
	}
	ch := make(chan event, 64)
	n.mu.Lock()
	n.clients[conn] = ch
	n.mu.Unlock()

	defer func() {
		n.mu.Lock()
		delete(n.clients, conn)
		n.mu.Unlock()
		conn.Close()
	}()

	for e := range ch {
		if err := conn.WriteJSON(e); err != nil {
			return
		}
	}
}

func (n *Notifier) broadcast(e event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for conn, ch := range n.clients {
		select {
		case ch <- e:
		default:
			// Client too slow to keep up; drop it rather than block the
			// pool's lock holder.
			delete(n.clients, conn)
			close(ch)
		}
	}
}

func (n *Notifier) Added(tx, old txpool.VerifiedTransaction) {
	kind := "added"
	if old != nil {
		kind = "replaced"
	}
	n.broadcast(eventFor(kind, tx, nil))
}

func (n *Notifier) Rejected(tx txpool.VerifiedTransaction, reason error) {
	n.broadcast(eventFor("rejected", tx, reason))
}

func (n *Notifier) Dropped(tx, by txpool.VerifiedTransaction) {
	n.broadcast(eventFor("dropped", tx, nil))
}

func (n *Notifier) Cancelled(tx txpool.VerifiedTransaction) {
	n.broadcast(eventFor("cancelled", tx, nil))
}

func (n *Notifier) Invalid(tx txpool.VerifiedTransaction) {
	n.broadcast(eventFor("invalid", tx, nil))
}

func (n *Notifier) Mined(tx txpool.VerifiedTransaction) {
	n.broadcast(eventFor("mined", tx, nil))
}
