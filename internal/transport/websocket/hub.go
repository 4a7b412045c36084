// Package websocket
package websocket

import (
	"context"
	"encoding/json"

	"gpustat-server/internal/logger"
)

// Hub is broadcast-only: every connected client receives every emitted
// event. There is no per-channel subscription; the server pushes one stream.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	events     chan []byte

	// done is closed when Run returns so late unregistrations do not
	// block on a channel nobody receives from.
	done chan struct{}

	log logger.Logger
}

type Event struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

func NewHub(log logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan []byte, 64),
		done:       make(chan struct{}),
		log:        log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.log.Info("ws: client registered", "total_clients", len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.log.Info("ws: client unregistered", "total_clients", len(h.clients))
			}

		case message := <-h.events:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					h.log.Warn("ws: client send buffer full, dropping client")
					delete(h.clients, client)
					close(client.send)
				}
			}

		case <-ctx.Done():
			close(h.done)
			for client := range h.clients {
				close(client.send)
			}
			return
		}
	}
}

// release hands a client back for unregistration, or drops it when the
// hub has already stopped.
func (h *Hub) release(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) Emit(event string, payload any) {
	message, err := json.Marshal(Event{Event: event, Payload: payload})
	if err != nil {
		h.log.Error("ws: failed to marshal event", "error", err)
		return
	}

	select {
	case h.events <- message:
	default:
		h.log.Warn("ws: event buffer full, dropping event", "event", event)
	}
}
