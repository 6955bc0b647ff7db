package handlers

import (
	"net/http"

	"carmarket/internal/services"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // public feed
	},
}

// FeedHandler handles listing feed WebSocket connections
type FeedHandler struct {
	hub *services.FeedHub
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(hub *services.FeedHub) *FeedHandler {
	return &FeedHandler{
		hub: hub,
	}
}

// HandleFeed handles GET /ws. Subscribers receive listing created and
// deleted events until they disconnect.
func (h *FeedHandler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}

	h.hub.Register(conn)
	defer h.hub.Unregister(conn)

	// Drain client frames; the feed is one-way, we only care about close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
