package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// DefaultHub is the process-wide hub, set by main before the router starts.
var DefaultHub *Hub

// Message is the envelope pushed to connected clients.
type Message struct {
	Type      string      `json:"type"`
	BookingID uint        `json:"booking_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// Hub manages all WebSocket connections, keyed by user id.
type Hub struct {
	// Registered clients
	Clients map[uint]*Client

	// Register requests from clients
	Register chan *Client

	// Unregister requests from clients
	Unregister chan *Client

	mu sync.RWMutex
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[uint]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.Clients[client.UserID] = client
			h.mu.Unlock()
			log.Printf("🔌 Client registered: user=%d", client.UserID)

		case client := <-h.Unregister:
			h.mu.Lock()
			if current, ok := h.Clients[client.UserID]; ok && current == client {
				delete(h.Clients, client.UserID)
				close(client.Send)
			}
			h.mu.Unlock()
			log.Printf("🔌 Client unregistered: user=%d", client.UserID)
		}
	}
}

// SendToUser pushes a message to one connected user. Users who are not
// connected, or whose buffer is full, are silently skipped: websocket
// delivery is best-effort on top of the persisted notification.
func (h *Hub) SendToUser(userID uint, message *Message) {
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now()
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("❌ Error marshaling websocket message: %v", err)
		return
	}

	h.mu.RLock()
	client, ok := h.Clients[userID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	select {
	case client.Send <- data:
	default:
		log.Printf("⚠️ Dropping websocket message for user %d, buffer full", userID)
	}
}
