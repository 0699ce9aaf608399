package wshub

import (
	"context"
	"encoding/json"
	"log"

	"github.com/coder/websocket"

	"housie/internal/broadcast"
)

// Client is one WebSocket connection subscribed to a room's events.
type Client struct {
	RoomCode string
	Conn     *websocket.Conn
	Send     chan []byte
}

func NewClient(roomCode string, conn *websocket.Conn) *Client {
	return &Client{
		RoomCode: roomCode,
		Conn:     conn,
		Send:     make(chan []byte, 16),
	}
}

// WritePump reads from the Send channel and writes to the WebSocket
// connection until the context ends or Send closes.
func (c *Client) WritePump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-c.Send:
			if !ok {
				return
			}
			if err := c.Conn.Write(ctx, websocket.MessageText, msg); err != nil {
				return
			}
		}
	}
}

// Forward marshals room events onto the Send channel. Non-blocking: a client
// that cannot keep up misses events. Returns when the context ends or the
// subscription closes.
func (c *Client) Forward(ctx context.Context, events <-chan broadcast.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				log.Printf("[WS] marshal error for room %s: %v", c.RoomCode, err)
				continue
			}
			select {
			case c.Send <- data:
			default:
				// Drop event if channel full
			}
		}
	}
}
