package sse

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/dimitrije/sweetshop-api/internal/models"
	"github.com/google/uuid"
)

const (
	EventSweetCreated = "sweet_created"
	EventSweetUpdated = "sweet_updated"
	EventSweetDeleted = "sweet_deleted"

	clientBuffer = 64
)

type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type SweetChangedData struct {
	SweetID  uuid.UUID `json:"sweet_id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Price    float64   `json:"price"`
	Quantity int       `json:"quantity"`
	Version  int       `json:"version"`
	By       uuid.UUID `json:"by"`
}

type SweetDeletedData struct {
	SweetID uuid.UUID `json:"sweet_id"`
	By      uuid.UUID `json:"by"`
}

type Client struct {
	ID     string
	UserID uuid.UUID
	Send   chan []byte
}

func NewClient(userID uuid.UUID) *Client {
	return &Client{
		ID:     uuid.New().String(),
		UserID: userID,
		Send:   make(chan []byte, clientBuffer),
	}
}

// Hub fans inventory events out to every connected dashboard. Delivery is
// best effort: a client whose buffer is full or who has left misses the event.
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan Event
	done       chan struct{}
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 256),
		done:       make(chan struct{}),
	}
}

// Run processes hub traffic until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer h.shutdown()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.Send)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			h.mu.RLock()
			for _, client := range h.clients {
				select {
				case client.Send <- data:
				default:
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	close(h.done)
	for id, client := range h.clients {
		delete(h.clients, id)
		close(client.Send)
	}
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.Send)
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish never blocks the caller; events are dropped when the hub is
// saturated or stopped.
func (h *Hub) Publish(event Event) {
	select {
	case h.broadcast <- event:
	case <-h.done:
	default:
	}
}

func (h *Hub) SweetCreated(s *models.Sweet, by uuid.UUID) {
	h.Publish(Event{Type: EventSweetCreated, Data: changed(s, by)})
}

func (h *Hub) SweetUpdated(s *models.Sweet, by uuid.UUID) {
	h.Publish(Event{Type: EventSweetUpdated, Data: changed(s, by)})
}

func (h *Hub) SweetDeleted(id, by uuid.UUID) {
	h.Publish(Event{Type: EventSweetDeleted, Data: SweetDeletedData{SweetID: id, By: by}})
}

func changed(s *models.Sweet, by uuid.UUID) SweetChangedData {
	return SweetChangedData{
		SweetID:  s.ID,
		Name:     s.Name,
		Category: s.Category,
		Price:    s.Price,
		Quantity: s.Quantity,
		Version:  s.Version,
		By:       by,
	}
}
