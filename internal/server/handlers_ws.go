package server

import (
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/firesense/firesense/internal/hub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // public push channel, any origin may subscribe
	},
}

func (s *Server) handleSubscribe(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade WebSocket: %w", err)
	}

	// Registered only once the handshake has succeeded (OPEN).
	sub := hub.NewSubscriber(conn, s.clock)
	s.registry.Add(sub)

	// Read pump — blocks until the client disconnects. Inbound frames are
	// heartbeats only and are discarded.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	// Removal tolerates the dispatcher's cleanup pass having gotten here first.
	sub.Close()
	s.registry.Remove(sub)

	return nil //nolint:nilerr // ReadMessage err is block-scoped; outer err is nil
}
