// Package push fans notification payloads out to live per-user
// subscribers.
package push

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// ErrHubClosed is returned by Publish after Close.
var ErrHubClosed = errors.New("push hub closed")

const defaultBuffer = 16

// Channel returns the channel name a user's notifications are published on.
func Channel(userID string) string {
	return "user_" + userID
}

// Hub is an in-memory publish/subscribe registry keyed by channel name.
// Publishing never blocks on a slow subscriber: a full buffer drops the
// message.
type Hub struct {
	mu     sync.Mutex
	subs   map[string]map[*subscriber]struct{}
	buffer int
	closed bool
	logger *slog.Logger
}

type subscriber struct {
	ch chan []byte
}

// NewHub creates a hub whose subscriber channels hold buffer messages.
func NewHub(buffer int, logger *slog.Logger) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		subs:   make(map[string]map[*subscriber]struct{}),
		buffer: buffer,
		logger: logger,
	}
}

// Subscribe registers a listener on channel. The returned cancel func
// unregisters it and closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe(channel string) (<-chan []byte, func()) {
	sub := &subscriber{ch: make(chan []byte, h.buffer)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(sub.ch)
		return sub.ch, func() {}
	}
	if h.subs[channel] == nil {
		h.subs[channel] = make(map[*subscriber]struct{})
	}
	h.subs[channel][sub] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if set, ok := h.subs[channel]; ok {
				if _, live := set[sub]; live {
					delete(set, sub)
					close(sub.ch)
				}
				if len(set) == 0 {
					delete(h.subs, channel)
				}
			}
		})
	}
	return sub.ch, cancel
}

// Publish delivers msg to every subscriber of channel. Having no
// subscribers is not an error.
func (h *Hub) Publish(ctx context.Context, channel string, msg []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrHubClosed
	}
	for sub := range h.subs[channel] {
		select {
		case sub.ch <- msg:
		default:
			h.logger.WarnContext(ctx, "push subscriber buffer full, dropping message", "channel", channel)
		}
	}
	return nil
}

// Subscribers returns the number of live subscribers on channel.
func (h *Hub) Subscribers(channel string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[channel])
}

// Close disconnects every subscriber. Later publishes fail with
// ErrHubClosed.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for channel, set := range h.subs {
		for sub := range set {
			close(sub.ch)
		}
		delete(h.subs, channel)
	}
}
