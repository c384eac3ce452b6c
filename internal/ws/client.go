package ws

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	// outboxSize buffers events per connection; a dashboard that falls
	// this far behind is dropped by the hub.
	outboxSize = 32

	writeTimeout = 5 * time.Second
	idleTimeout  = 90 * time.Second
	pingInterval = 30 * time.Second

	maxInboundFrame = 256
)

// Client is one dashboard connection. The socket is broadcast-only:
// inbound frames are drained solely to detect disconnects.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	outbox chan []byte
}

func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		outbox: make(chan []byte, outboxSize),
	}
}

// ReadPump blocks until the peer goes away, keeping the read deadline
// fresh off pong frames. Whatever the peer sends is discarded.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxInboundFrame)
	_ = c.conn.SetReadDeadline(time.Now().Add(idleTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(idleTimeout))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// WritePump serializes all writes to the connection: queued events plus
// the keepalive pings. It exits when the hub closes the outbox or a
// write fails.
func (c *Client) WritePump() {
	pinger := time.NewTicker(pingInterval)
	defer func() {
		pinger.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case evt, open := <-c.outbox:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !open {
				_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, evt); err != nil {
				return
			}

		case <-pinger.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
