package sse

import (
	"sync"
)

// Event is a notification pushed to connected dashboard clients.
type Event struct {
	RecipientID string
	Event       string
	Data        interface{}
}

// Hub manages SSE subscribers and event broadcasting, keyed by member ID.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a subscriber for a member and returns the event
// channel plus a cleanup function.
func (h *Hub) Subscribe(memberID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	if h.subscribers[memberID] == nil {
		h.subscribers[memberID] = make(map[chan Event]struct{})
	}
	h.subscribers[memberID][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[memberID], ch)
		close(ch)
		if len(h.subscribers[memberID]) == 0 {
			delete(h.subscribers, memberID)
		}
	}

	return ch, cleanup
}

// Publish sends an event to all subscribers of one member.
func (h *Hub) Publish(memberID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[memberID]; ok {
		for ch := range subs {
			select {
			case ch <- event:
			default:
				// Skip if channel is full (non-blocking to prevent deadlock)
			}
		}
	}
}

// SubscriberCount returns the number of open channels for a member.
func (h *Hub) SubscriberCount(memberID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[memberID])
}
