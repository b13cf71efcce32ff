package ws

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"messaging-service/internal/models"
	"messaging-service/internal/observability"
)

// ThreadTopic is the subscription key for the conversation between two
// users. The pair is unordered so both participants land on the same topic.
func ThreadTopic(userA, userB int) string {
	if userA > userB {
		userA, userB = userB, userA
	}
	return fmt.Sprintf("thread:%d:%d", userA, userB)
}

// UserTopic is the subscription key for a user's own event stream
// (conversation list changes, notifications).
func UserTopic(userID int) string {
	return fmt.Sprintf("user:%d", userID)
}

// Hub maintains active websocket subscriptions keyed by topic. Events carry
// identifiers only; subscribers refetch the affected aggregate, so missed or
// duplicated deliveries cost extra reads, never incorrect state.
type Hub struct {
	topics   map[string]map[*websocket.Conn]bool
	connInfo map[string]map[*websocket.Conn]ConnInfo
	mu       sync.RWMutex
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		topics:   make(map[string]map[*websocket.Conn]bool),
		connInfo: make(map[string]map[*websocket.Conn]ConnInfo),
	}
}

// Subscribe registers a websocket connection on a topic.
func (h *Hub) Subscribe(topic string, conn *websocket.Conn, info ConnInfo) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.topics[topic]; !ok {
		h.topics[topic] = make(map[*websocket.Conn]bool)
	}
	h.topics[topic][conn] = true
	if _, ok := h.connInfo[topic]; !ok {
		h.connInfo[topic] = make(map[*websocket.Conn]ConnInfo)
	}
	h.connInfo[topic][conn] = info
}

// Unsubscribe removes a connection from a topic, dropping the topic once
// its last subscriber leaves.
func (h *Hub) Unsubscribe(topic string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.topics[topic]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.topics, topic)
		}
	}
	if infos, ok := h.connInfo[topic]; ok {
		delete(infos, conn)
		if len(infos) == 0 {
			delete(h.connInfo, topic)
		}
	}
}

// Broadcast sends an event to every subscriber of a topic. Connections that
// fail to accept the write are closed and evicted.
func (h *Hub) Broadcast(topic string, event models.ThreadEvent) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.topics[topic]))
	for conn := range h.topics[topic] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	payload, _ := json.Marshal(event)
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("websocket write error: %v", err)
			conn.Close()
			h.Unsubscribe(topic, conn)
			observability.IncWSEvent("thread", "ws_error")
		}
	}
}

// SubscriberCount reports the number of live connections on a topic.
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}
