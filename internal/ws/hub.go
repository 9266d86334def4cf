package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"stockflow-api/internal/service"

	"github.com/gofiber/contrib/websocket"
)

// broadcastBuffer bounds queued events; publishers never wait on slow clients.
const broadcastBuffer = 64

// Client is the part of a websocket connection the hub writes to.
type Client interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Hub fans committed state changes out to every connected client.
type Hub struct {
	Clients    map[Client]bool
	Register   chan Client
	Unregister chan Client
	Broadcast  chan []byte
	mutex      sync.Mutex
	logger     *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		Clients:    make(map[Client]bool),
		Register:   make(chan Client),
		Unregister: make(chan Client),
		Broadcast:  make(chan []byte, broadcastBuffer),
		logger:     logger,
	}
}

// Run serves registrations and broadcasts until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for conn := range h.Clients {
				conn.Close()
				delete(h.Clients, conn)
			}
			h.mutex.Unlock()
			return

		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			h.logger.Info("ws client connected", "clients", h.ClientCount())

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Publish queues an event for broadcast. When the queue is full the event is
// dropped.
func (h *Hub) Publish(event service.Event) {
	msg, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("encode ws event", "error", err)
		return
	}
	select {
	case h.Broadcast <- msg:
	default:
		h.logger.Warn("ws broadcast queue full, dropping event", "action", event.Action)
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients)
}
