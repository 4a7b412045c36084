package websocket

import (
	"net/http"
	"slices"

	"gpustat-server/internal/logger"

	"github.com/gorilla/websocket"
)

type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	log      logger.Logger

	// latest, when set, is sent to each client right after the upgrade so
	// a fresh dashboard does not wait a full scrape interval.
	latest func() ([]byte, bool)
}

func NewHandler(hub *Hub, log logger.Logger, allowedOrigins []string, latest func() ([]byte, bool)) *Handler {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || len(allowedOrigins) == 0 {
				return true
			}

			if !slices.Contains(allowedOrigins, origin) {
				log.Warn("ws: origin rejected", "origin", origin)
				return false
			}
			return true
		},
	}

	return &Handler{
		hub:      hub,
		upgrader: upgrader,
		log:      log,
		latest:   latest,
	}
}

func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("ws: upgrade failed", "error", err)
		return
	}

	client := NewClient(h.hub, conn, h.log)
	h.hub.register <- client

	if h.latest != nil {
		if message, ok := h.latest(); ok {
			client.send <- message
		}
	}

	go client.writePump()
	go client.readPump()

	h.log.Info("ws: client connected", "remote_addr", conn.RemoteAddr())
}
