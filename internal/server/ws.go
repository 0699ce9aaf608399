package server

import (
	"log"
	"net/http"
	"strings"

	"github.com/coder/websocket"

	"housie/internal/game"
	"housie/internal/wshub"
)

// handleWS streams a room's broadcast events over a WebSocket. The client
// only listens; all game actions go through the HTTP endpoints.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(r.PathValue("code"))
	room := s.Rooms.Get(code)
	if room == nil {
		writeError(w, game.ErrRoomNotFound)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.Printf("[WS] accept failed for room %s: %v", code, err)
		return
	}

	// CloseRead keeps control frames serviced and cancels the context when
	// the peer goes away.
	ctx := conn.CloseRead(r.Context())

	events := s.Hub.Subscribe(code)
	defer s.Hub.Unsubscribe(code, events)

	client := wshub.NewClient(code, conn)
	go client.WritePump(ctx)
	client.Forward(ctx, events)

	conn.Close(websocket.StatusNormalClosure, "")
}
