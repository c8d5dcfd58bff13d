package hub

import (
	"encoding/json"
	"sync"

	"gamecatalog/backend/internal/logging"
)

// EventReviewAdded is sent when a review is posted on a game.
const EventReviewAdded = "review_added"

// Event represents a real-time event to be sent to clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Client represents a single client connection watching a game page.
// It's essentially a channel that the SSE handler will listen to.
type Client chan []byte

// Hub manages the clients watching each game.
type Hub struct {
	games map[int]map[Client]bool
	mu    sync.RWMutex
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		games: make(map[int]map[Client]bool),
	}
}

// Subscribe adds a new client to a game's feed.
func (h *Hub) Subscribe(gameID int, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.games[gameID]; !ok {
		h.games[gameID] = make(map[Client]bool)
	}
	h.games[gameID][client] = true
}

// Unsubscribe removes a client from a game's feed and closes it.
func (h *Hub) Unsubscribe(gameID int, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.games[gameID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client) // Close the channel to signal the SSE handler to stop.
			if len(clients) == 0 {
				delete(h.games, gameID)
			}
		}
	}
}

// Subscribers returns how many clients watch a game.
func (h *Hub) Subscribers(gameID int) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.games[gameID])
}

// Broadcast sends an event to all clients watching a game.
func (h *Hub) Broadcast(gameID int, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.games[gameID]
	if !ok {
		return
	}
	messageBytes, err := json.Marshal(event)
	if err != nil {
		logging.Error().Err(err).Int("game_id", gameID).Str("type", event.Type).Msg("failed to encode event")
		return
	}

	for client := range clients {
		// Use a non-blocking send to prevent a slow client from blocking the hub.
		select {
		case client <- messageBytes:
		default:
			logging.Debug().Int("game_id", gameID).Msg("dropping event for slow client")
		}
	}
}
