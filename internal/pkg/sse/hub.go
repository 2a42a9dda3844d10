package sse

import (
	"sync"
)

// Event names pushed to open portal screens
const (
	EventConnected          = "connected"
	EventPing               = "ping"
	EventDayChanged         = "day_changed"
	EventTaskAssigned       = "task_assigned"
	EventSubmissionReviewed = "submission_reviewed"
)

// Event is delivered to subscribers of Target, or to everyone when broadcast
type Event struct {
	Target string
	Event  string
	Data   interface{}
}

// Hub fans events out to stream subscribers keyed by employee ID.
// Anonymous subscribers use the empty key and only receive broadcasts.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
	bufferSize  int
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
		bufferSize:  10,
	}
}

// Subscribe registers a subscriber and returns its channel and cleanup function
func (h *Hub) Subscribe(key string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, h.bufferSize)

	if h.subscribers[key] == nil {
		h.subscribers[key] = make(map[chan Event]struct{})
	}
	h.subscribers[key][ch] = struct{}{}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers[key], ch)
			close(ch)
			if len(h.subscribers[key]) == 0 {
				delete(h.subscribers, key)
			}
		})
	}

	return ch, cleanup
}

// Publish sends an event to all subscribers of one key
func (h *Hub) Publish(key string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	event.Target = key
	for ch := range h.subscribers[key] {
		send(ch, event)
	}
}

// Broadcast sends an event to every subscriber
func (h *Hub) Broadcast(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	event.Target = ""
	for _, subs := range h.subscribers {
		for ch := range subs {
			send(ch, event)
		}
	}
}

// send never blocks; full channels drop the event
func send(ch chan Event, event Event) {
	select {
	case ch <- event:
	default:
	}
}

func (h *Hub) SubscriberCount(key string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subscribers[key])
}

func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}
