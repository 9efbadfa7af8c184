package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Semantic change events pushed to external observers (the GUI shell).
// Observers are expected to re-query; payloads carry ids, not state.
const (
	EventFoodChanged    = "food.changed"
	EventRecipeChanged  = "recipe.changed"
	EventWeekChanged    = "week.changed"
	EventProfileChanged = "profile.changed"
)

type WSClient struct {
	Conn *websocket.Conn
}

// EventHub fans change notifications out to connected websocket observers.
// A nil hub is valid and drops everything, so services can run without a
// GUI attached (tests, import tooling).
type EventHub struct {
	mu      sync.RWMutex
	clients map[*WSClient]struct{}
}

func NewEventHub() *EventHub {
	return &EventHub{clients: make(map[*WSClient]struct{})}
}

func (h *EventHub) Register(c *WSClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *EventHub) Unregister(c *WSClient) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	_ = c.Conn.Close()
}

func (h *EventHub) Publish(kind string, payload any) {
	if h == nil {
		return
	}
	msg, _ := json.Marshal(map[string]any{
		"kind":    kind,
		"payload": payload,
		"at":      time.Now().Format(time.RFC3339),
	})
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		_ = c.Conn.WriteMessage(websocket.TextMessage, msg)
	}
}
