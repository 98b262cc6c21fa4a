package websocket

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
)

// Hub maintains the set of active clients, keyed by the user that opened
// them, and pushes task-change notices to a user's connections. Clients are
// told that something changed; they refetch over the REST API themselves.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// A map of user IDs to the set of their open connections.
	byUser map[string]map[*Client]bool

	notify chan notification
}

type notification struct {
	userID  string
	message []byte
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		byUser:     make(map[string]map[*Client]bool),
		notify:     make(chan notification, 64),
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			if h.byUser[client.UserID] == nil {
				h.byUser[client.UserID] = make(map[*Client]bool)
			}
			h.byUser[client.UserID][client] = true
			log.Info().Int("total_clients", len(h.clients)).Msg("Client connected")
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
				log.Info().Int("total_clients", len(h.clients)).Msg("Client disconnected")
			}
		case n := <-h.notify:
			for client := range h.byUser[n.userID] {
				select {
				case client.Send <- n.message:
				default:
					h.drop(client)
				}
			}
		}
	}
}

// NotifyUser sends an action/payload message to every connection the user
// has open. It never blocks the caller.
func (h *Hub) NotifyUser(userID, action string, payload interface{}) {
	data, err := json.Marshal(Message{Action: action, Payload: payload})
	if err != nil {
		log.Error().Err(err).Str("action", action).Msg("Failed to marshal websocket message")
		return
	}
	select {
	case h.notify <- notification{userID: userID, message: data}:
	default:
		log.Warn().Str("action", action).Msg("Dropping websocket notification, hub backlog full")
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	if subs, ok := h.byUser[client.UserID]; ok {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.byUser, client.UserID)
		}
	}
	close(client.Send)
}
