package server

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// wsChannel adapts a websocket connection to session.Channel. gorilla
// connections allow one concurrent writer, so sends are serialized.
type wsChannel struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsChannel) Send(payload any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(payload)
}

// handleWS upgrades the per-session delivery channel and keeps it open
// until the client goes away. Inbound frames are keep-alives and are
// drained without interpretation.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("session_id")
	if token == "" {
		http.Error(w, "missing session id", http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "session_id", token, "error", err)
		return
	}

	logger := s.logger.With("session_id", token)
	logger.Info("channel connected")

	ch := &wsChannel{conn: conn}
	s.registry.Connect(token, ch)

	defer func() {
		// Only evict our own mapping; a reconnect may have replaced it.
		s.registry.DisconnectChannel(token, ch)
		conn.Close()
		logger.Info("channel disconnected")
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
