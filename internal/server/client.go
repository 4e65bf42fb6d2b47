package server

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// wsClient serializes writes to one WebSocket connection. Event handlers run
// on their own goroutines and share it.
type wsClient struct {
	id     string
	conn   *websocket.Conn
	logger *slog.Logger

	mu sync.Mutex
}

func newWSClient(id string, conn *websocket.Conn, logger *slog.Logger) *wsClient {
	return &wsClient{id: id, conn: conn, logger: logger}
}

func (c *wsClient) send(eventType string, data any) {
	frame := outFrame{Type: eventType, Data: data}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(frame); err != nil {
		c.logger.Debug("websocket write failed", "conn", c.id, "event", eventType, "error", err)
	}
}
