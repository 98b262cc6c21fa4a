package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/taskyhq/tasky-be/internal/auth"
	ws "github.com/taskyhq/tasky-be/internal/websocket"
)

// WebSocketHandler upgrades HTTP connections to task-notification sockets.
type WebSocketHandler struct {
	hub *ws.Hub
}

// NewWebSocketHandler creates a new WebSocketHandler.
func NewWebSocketHandler(hub *ws.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS is enforced at the router; the upgrade accepts any origin.
		return true
	},
}

// Serve authenticates the ?token= query parameter and binds the socket to
// the token's user. Browsers cannot set an Authorization header on a
// websocket upgrade, hence the query parameter.
func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.ValidateJWT(r.URL.Query().Get("token"))
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Invalid or expired token.")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade websocket connection")
		return
	}

	client := ws.NewClient(h.hub, conn, claims.UserID)
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
