// Package stream fans a run's published events out to websocket
// subscribers of GET /v1/runs/{run_id}/stream. services/feeapi publishes
// every event of a run, then a Done message, after ProcessTransaction has
// returned; a subscriber receives only messages published after it
// subscribed.
package stream

import (
	"context"
	"sync"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/genlayerlabs/fee-simulator/core/types"
)

// EventMessage is one wire message sent to a run's subscribers.
type EventMessage struct {
	RunID string          `json:"run_id"`
	Event types.FeeEvent  `json:"event"`
	Done  bool            `json:"done"`
	Error string          `json:"error,omitempty"`
}

// Broadcaster fans FeeEvents for a set of in-flight runs out to any
// number of subscribed websocket connections per run.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[string][]chan EventMessage
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subscribers: make(map[string][]chan EventMessage)}
}

// Subscribe registers a new listener for runID and returns a channel
// that receives every message published for it until Unsubscribe is
// called or the run completes.
func (b *Broadcaster) Subscribe(runID string) chan EventMessage {
	ch := make(chan EventMessage, 64)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[runID] = append(b.subscribers[runID], ch)
	return ch
}

func (b *Broadcaster) Unsubscribe(runID string, ch chan EventMessage) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.subscribers[runID]
	for i, s := range subs {
		if s == ch {
			b.subscribers[runID] = append(subs[:i], subs[i+1:]...)
			close(ch)
			break
		}
	}
	if len(b.subscribers[runID]) == 0 {
		delete(b.subscribers, runID)
	}
}

// Publish fans msg out to every subscriber of runID, dropping it for
// any subscriber whose buffer is full rather than blocking the
// computation.
func (b *Broadcaster) Publish(runID string, msg EventMessage) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subscribers[runID] {
		select {
		case ch <- msg:
		default:
		}
	}
}

// ServeRun accepts a websocket connection and relays every message
// published for runID until the connection closes or ctx is canceled.
func (b *Broadcaster) ServeRun(ctx context.Context, conn *websocket.Conn, runID string) error {
	ch := b.Subscribe(runID)
	defer b.Unsubscribe(runID, ch)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			if err := wsjson.Write(ctx, conn, msg); err != nil {
				return err
			}
			if msg.Done {
				return nil
			}
		}
	}
}
