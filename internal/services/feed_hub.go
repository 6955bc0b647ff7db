package services

import (
	"encoding/json"
	"sync"

	"carmarket/internal/models"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// FeedEvent is a listing change broadcast to feed subscribers.
type FeedEvent struct {
	Type      string          `json:"type"`
	Listing   *models.Listing `json:"listing,omitempty"`
	ListingID string          `json:"listing_id,omitempty"`
}

// FeedHub manages WebSocket subscribers of the listing feed.
type FeedHub struct {
	mu    sync.RWMutex
	conns map[*websocket.Conn]struct{}
}

// NewFeedHub creates a new feed hub.
func NewFeedHub() *FeedHub {
	return &FeedHub{
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Register adds a subscriber connection.
func (h *FeedHub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.conns[conn] = struct{}{}

	log.Info().Int("subscribers", len(h.conns)).Msg("Feed subscriber registered")
}

// Unregister removes and closes a subscriber connection.
func (h *FeedHub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.conns[conn]; exists {
		conn.Close()
		delete(h.conns, conn)
		log.Info().Int("subscribers", len(h.conns)).Msg("Feed subscriber unregistered")
	}
}

// Subscribers returns the number of connected subscribers.
func (h *FeedHub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Broadcast sends an event to every subscriber. Dead connections are
// dropped on write failure.
func (h *FeedHub) Broadcast(event FeedEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal feed event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Warn().Err(err).Msg("Dropping dead feed subscriber")
			conn.Close()
			delete(h.conns, conn)
		}
	}
}
