package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

const (
	inboxSize      = 256
	subscriberSize = 32
)

// Subscription is one live dashboard connection's view of the hub.
type Subscription struct {
	ID string
	C  <-chan []byte

	ch chan []byte
}

// Hub fans events out to every subscriber. Publish hands off to a buffered
// inbox; Run drains it. A full inbox or a full subscriber buffer drops the
// message for that destination only.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]*Subscription
	inbox  chan Event
	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		subs:   make(map[string]*Subscription),
		inbox:  make(chan Event, inboxSize),
		logger: logger,
	}
}

func (h *Hub) Publish(evt Event) {
	select {
	case h.inbox <- evt:
	default:
		h.logger.Warn("broadcast inbox full, dropping event",
			"event", evt.Name(), "action", evt.Action, "id", evt.EntityID)
	}
}

// Run delivers queued events until ctx is done, then closes every
// subscription.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case evt := <-h.inbox:
			h.broadcast(evt)
		}
	}
}

func (h *Hub) broadcast(evt Event) {
	payload, err := json.Marshal(evt)
	if err != nil {
		h.logger.Error("failed to encode event", "event", evt.Name(), "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, sub := range h.subs {
		select {
		case sub.ch <- payload:
		default:
			h.logger.Warn("subscriber too slow, dropping event", "subscriber", id, "event", evt.Name())
		}
	}
}

func (h *Hub) Subscribe() *Subscription {
	ch := make(chan []byte, subscriberSize)
	sub := &Subscription{ID: uuid.NewString(), C: ch, ch: ch}

	h.mu.Lock()
	h.subs[sub.ID] = sub
	h.mu.Unlock()
	return sub
}

// Unsubscribe removes sub and closes its channel. Calling it twice is safe.
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sub.ID]; !ok {
		return
	}
	delete(h.subs, sub.ID)
	close(sub.ch)
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, sub := range h.subs {
		delete(h.subs, id)
		close(sub.ch)
	}
}
