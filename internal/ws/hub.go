package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"BazaarBot/internal/service/order"
)

// Hub maintains the set of active dashboard connections and fans out
// order lifecycle events to all of them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan order.Event
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	log        *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan order.Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log,
	}
}

// Run starts the hub's event loop. Should be called in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Publish queues an order event for broadcast. A full queue drops the
// event rather than blocking the order path.
func (h *Hub) Publish(event order.Event) {
	select {
	case h.broadcast <- event:
	default:
		if h.log != nil {
			h.log.Warn("dropping order event, broadcast queue full",
				slog.String("order_id", event.OrderID))
		}
	}
}

var _ order.EventSink = (*Hub)(nil)
