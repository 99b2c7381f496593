// websocket/hub.go
package websocket

import (
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type MessageType string

const (
	MessageTypeReclamation MessageType = "RECLAMATION_CREATED"
	MessageTypeCalendar    MessageType = "CALENDAR_EVENT"
	MessageTypeChat        MessageType = "CHAT_MESSAGE"
	MessageTypeSubscribe   MessageType = "SUBSCRIBE"
	MessageTypeUnsubscribe MessageType = "UNSUBSCRIBE"
	MessageTypeError       MessageType = "ERROR"
)

// Well-known topics the dashboard subscribes to. Chat threads use their
// thread UUID as the topic name.
const (
	TopicReclamations = "reclamations"
	TopicCalendar     = "calendar"
)

type WebSocketMessage struct {
	Type      MessageType `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
	Topic     string      `json:"topic,omitempty"`
}

type Client struct {
	ID     uuid.UUID
	Email  string
	Conn   *websocket.Conn
	Hub    *Hub
	Send   chan WebSocketMessage
	Topics map[string]bool
	mu     sync.RWMutex
}

type Hub struct {
	clients    map[*Client]bool
	broadcast  chan WebSocketMessage
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan WebSocketMessage),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

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
				close(client.Send)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.BroadcastToTopic(message.Topic, message)
		}
	}
}

// Broadcast queues a message for every client subscribed to its topic.
func (h *Hub) Broadcast(message WebSocketMessage) {
	h.broadcast <- message
}

// BroadcastToTopic sends a message to clients subscribed to a topic,
// optionally excluding the sender so echoes stay optimistic-append only on
// the sending side. Takes the write lock: backlogged clients are dropped
// here, and concurrent broadcasts must not race on the client map or
// double-close a Send channel.
func (h *Hub) BroadcastToTopic(topic string, message WebSocketMessage, excludeClientID ...uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	excludeMap := make(map[uuid.UUID]bool)
	for _, id := range excludeClientID {
		excludeMap[id] = true
	}

	for client := range h.clients {
		if excludeMap[client.ID] {
			continue
		}

		if !client.IsSubscribed(topic) {
			continue
		}

		select {
		case client.Send <- message:
		default:
			close(client.Send)
			delete(h.clients, client)
		}
	}
}

// GetClientCount returns the number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// GetTopicSubscribers returns all clients subscribed to a topic
func (h *Hub) GetTopicSubscribers(topic string) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var subscribers []*Client
	for client := range h.clients {
		if client.IsSubscribed(topic) {
			subscribers = append(subscribers, client)
		}
	}
	return subscribers
}

// Subscribe adds a topic to the client's subscription set
func (c *Client) Subscribe(topic string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Topics == nil {
		c.Topics = make(map[string]bool)
	}
	c.Topics[topic] = true
}

// Unsubscribe removes a topic from the client's subscription set
func (c *Client) Unsubscribe(topic string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.Topics, topic)
}

// IsSubscribed checks if the client is subscribed to a topic
func (c *Client) IsSubscribed(topic string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, exists := c.Topics[topic]
	return exists
}
