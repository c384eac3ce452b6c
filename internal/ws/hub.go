package ws

import (
	"log"
	"sync"
)

// Hub fans application events out to every connected dashboard socket.
// All membership changes go through Run's loop; the mutex only guards
// the map for readers like ClientCount.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}

	join   chan *Client
	leave  chan *Client
	events chan []byte

	logger *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		join:    make(chan *Client, 32),
		leave:   make(chan *Client, 32),
		events:  make(chan []byte, 256),
		logger:  logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.join:
			if c == nil {
				continue
			}
			h.mu.Lock()
			h.clients[c] = struct{}{}
			n := len(h.clients)
			h.mu.Unlock()
			h.logf("ws client joined, %d connected", n)

		case c := <-h.leave:
			if c == nil {
				continue
			}
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.outbox)
			}
			n := len(h.clients)
			h.mu.Unlock()
			h.logf("ws client left, %d connected", n)

		case evt := <-h.events:
			h.mu.RLock()
			targets := make([]*Client, 0, len(h.clients))
			for c := range h.clients {
				targets = append(targets, c)
			}
			h.mu.RUnlock()

			for _, c := range targets {
				select {
				case c.outbox <- evt:
				default:
					// A full outbox means the peer stopped reading;
					// drop it rather than stall the fan-out.
					h.leave <- c
				}
			}
		}
	}
}

func (h *Hub) Register(c *Client) {
	if h == nil {
		return
	}
	h.join <- c
}

func (h *Hub) Unregister(c *Client) {
	if h == nil {
		return
	}
	h.leave <- c
}

// Broadcast enqueues an event for every connected client. Events are
// best-effort: when the buffer is full the event is dropped, since the
// polling endpoints remain the source of truth.
func (h *Hub) Broadcast(evt []byte) {
	if h == nil {
		return
	}
	select {
	case h.events <- evt:
	default:
		h.logf("ws event dropped, buffer full")
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}
