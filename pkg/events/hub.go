package events

import (
	"encoding/json"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

const subscriberBuffer = 16

// EventHub fans events out to SSE subscribers. It remembers the latest event
// of each name so a new subscriber starts with the current state.
type EventHub struct {
	mu     sync.RWMutex
	subs   map[chan Event]struct{}
	latest map[string]Event
}

func NewEventHub() *EventHub {
	return &EventHub{
		subs:   make(map[chan Event]struct{}),
		latest: make(map[string]Event),
	}
}

// Subscribe registers a subscriber. The returned channel is pre-filled with
// the latest event of each name, ordered by name.
func (h *EventHub) Subscribe() chan Event {
	ch := make(chan Event, subscriberBuffer)
	h.mu.Lock()
	for _, ev := range h.latestLocked() {
		ch <- ev
	}
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *EventHub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
	h.mu.Unlock()
}

// Subscribers returns the number of active subscribers.
func (h *EventHub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Latest returns the most recent event of each name, ordered by name.
func (h *EventHub) Latest() []Event {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latestLocked()
}

func (h *EventHub) latestLocked() []Event {
	out := make([]Event, 0, len(h.latest))
	for _, ev := range h.latest {
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Publish sends payload to every subscriber. Slow subscribers miss it.
func (h *EventHub) Publish(name string, payload any) {
	if h == nil {
		return
	}
	b, err := json.Marshal(payload)
	if err != nil {
		logrus.WithError(err).WithField("event", name).Warn("failed to marshal event payload")
		return
	}
	msg := Event{Name: name, Data: b}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest[name] = msg
	for ch := range h.subs {
		select {
		case ch <- msg:
		default:
			logrus.WithField("event", name).Trace("subscriber is slow, dropping event")
		}
	}
}
