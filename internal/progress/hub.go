// Package progress provides a broadcast hub for per-field form-fill
// progress events. Delivery is best-effort: a slow or dead listener never
// blocks or fails the producing fill run.
package progress

import (
	"sync"
)

// Status is the lifecycle stage of one field fill.
type Status string

const (
	StatusFilling Status = "filling"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event is one streamed status update during a fill run.
type Event struct {
	Field    string  `json:"field"`
	Status   Status  `json:"status"`
	Message  string  `json:"message"`
	Progress float64 `json:"progress"` // cumulative percentage, 0-100
}

// subscriberBuffer is the per-listener channel depth. A fill run emits at
// most two events per field, so this comfortably covers a whole run; a
// consumer that still falls behind loses events rather than stalling the fill.
const subscriberBuffer = 128

// Subscriber receives broadcast events on a buffered channel.
type Subscriber struct {
	ch     chan Event
	closed bool // guarded by the hub mutex
}

// Events returns the receive side of the subscription.
func (s *Subscriber) Events() <-chan Event {
	return s.ch
}

// Hub fans broadcast events out to the current subscriber set. It is safe
// for concurrent use by unrelated fill runs and listeners.
type Hub struct {
	mu   sync.Mutex
	subs map[*Subscriber]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscriber]struct{})}
}

// Subscribe registers a new listener.
func (h *Hub) Subscribe() *Subscriber {
	s := &Subscriber{ch: make(chan Event, subscriberBuffer)}
	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()
	return s
}

// Unsubscribe removes a listener and closes its channel. Safe to call more
// than once.
func (h *Hub) Unsubscribe(s *Subscriber) {
	if s == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	delete(h.subs, s)
	close(s.ch)
}

// Broadcast delivers an event to every live subscriber without blocking.
// Events for a subscriber whose buffer is full are dropped for that
// subscriber only; ordering of delivered events per subscriber matches
// broadcast order.
func (h *Hub) Broadcast(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs {
		if s.closed {
			continue
		}
		select {
		case s.ch <- ev:
		default:
			// Consumer is not keeping up; drop rather than stall the fill.
		}
	}
}

// Len returns the number of active subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
