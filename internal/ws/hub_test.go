package ws

import (
	"testing"
	"time"
)

func waitForCount(t *testing.T, h *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if h.ClientCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d clients, got %d", want, h.ClientCount())
}

func TestHub_BroadcastReachesEveryClient(t *testing.T) {
	h := NewHub(nil)
	go h.Run()

	a := &Client{hub: h, outbox: make(chan []byte, outboxSize)}
	b := &Client{hub: h, outbox: make(chan []byte, outboxSize)}
	h.Register(a)
	h.Register(b)
	waitForCount(t, h, 2)

	h.Broadcast([]byte(`{"type":"status_changed"}`))

	for _, c := range []*Client{a, b} {
		select {
		case evt := <-c.outbox:
			if string(evt) != `{"type":"status_changed"}` {
				t.Fatalf("unexpected event %s", evt)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("client did not receive the event")
		}
	}
}

func TestHub_SlowClientIsDropped(t *testing.T) {
	h := NewHub(nil)
	go h.Run()

	slow := &Client{hub: h, outbox: make(chan []byte)}
	h.Register(slow)
	waitForCount(t, h, 1)

	// Nothing drains the outbox, so the first fan-out evicts the client.
	h.Broadcast([]byte(`{"type":"application_recorded"}`))
	waitForCount(t, h, 0)
}

func TestHub_UnregisterClosesOutbox(t *testing.T) {
	h := NewHub(nil)
	go h.Run()

	c := &Client{hub: h, outbox: make(chan []byte, 1)}
	h.Register(c)
	waitForCount(t, h, 1)

	h.Unregister(c)
	waitForCount(t, h, 0)

	select {
	case _, open := <-c.outbox:
		if open {
			t.Fatalf("expected closed outbox")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("outbox was not closed")
	}
}

func TestHub_NilHubIsInert(t *testing.T) {
	var h *Hub
	h.Broadcast([]byte("x"))
	h.Register(nil)
	h.Unregister(nil)
	if h.ClientCount() != 0 {
		t.Fatalf("nil hub must report zero clients")
	}
}
