// websocket/handler.go
package websocket

import (
	"fmt"
	"strings"
	"time"

	"steg-backend/config"
	"steg-backend/token"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService defines a token validator interface
type AuthService interface {
	VerifyToken(token string) (*token.Payload, error)
}

// ChatService persists inbound chat messages before they are rebroadcast.
type ChatService interface {
	SaveMessage(threadID string, senderEmail, content string) (messageID uuid.UUID, err error)
}

// WsHandler manages WebSocket requests and connections
type WsHandler struct {
	hub  *Hub
	auth AuthService
	chat ChatService
}

// NewWsHandler creates a new WebSocket handler instance
func NewWsHandler(hub *Hub, auth AuthService, chat ChatService) *WsHandler {
	return &WsHandler{
		hub:  hub,
		auth: auth,
		chat: chat,
	}
}

// HandleWebSocket handles incoming WebSocket upgrade requests
func (h *WsHandler) HandleWebSocket(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	// Token comes from the Authorization header (dashboard) or the
	// HTTPOnly cookie (same-site consumers).
	tokenStr := c.Cookies("access_token")
	if header := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(header, "Bearer ") {
		tokenStr = strings.TrimPrefix(header, "Bearer ")
	}
	if tokenStr == "" {
		config.Logger.Warn("WebSocket connection attempted without access token")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required - no access token found",
		})
	}

	payload, err := h.auth.VerifyToken(tokenStr)
	if err != nil {
		config.Logger.Warn("Invalid access token for WebSocket",
			zap.Error(err),
		)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired token",
		})
	}

	// Comma-separated list of topics to auto-subscribe; not sensitive data
	// so the query string is fine.
	topicsParam := c.Query("topics")
	var topics []string
	for _, t := range strings.Split(topicsParam, ",") {
		if t = strings.TrimSpace(t); t != "" {
			topics = append(topics, t)
		}
	}
	if len(topics) == 0 {
		topics = []string{TopicReclamations}
	}

	config.Logger.Info("WebSocket connection authenticated",
		zap.String("email", payload.Email),
		zap.Strings("topics", topics),
	)

	return websocket.New(func(conn *websocket.Conn) {
		client := &Client{
			ID:     uuid.New(),
			Email:  payload.Email,
			Conn:   conn,
			Hub:    h.hub,
			Send:   make(chan WebSocketMessage, 256),
			Topics: make(map[string]bool),
		}

		for _, topic := range topics {
			client.Topics[topic] = true
		}

		h.hub.register <- client

		config.Logger.Info("WebSocket client registered",
			zap.String("clientID", client.ID.String()),
			zap.String("email", client.Email),
		)

		go client.writePump()
		h.readPump(client)
	})(c)
}

// readPump listens for incoming messages from the WebSocket
func (h *WsHandler) readPump(c *Client) {
	defer func() {
		config.Logger.Info("WebSocket client disconnecting",
			zap.String("clientID", c.ID.String()),
			zap.String("email", c.Email),
		)
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	// Connection limits
	c.Conn.SetReadLimit(512 * 1024) // 512KB max message size
	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		var msg WebSocketMessage
		err := c.Conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				config.Logger.Warn("WebSocket unexpected close",
					zap.String("clientID", c.ID.String()),
					zap.Error(err),
				)
			}
			break
		}

		if msg.Timestamp.IsZero() {
			msg.Timestamp = time.Now()
		}

		config.Logger.Debug("WebSocket message received",
			zap.String("clientID", c.ID.String()),
			zap.String("type", string(msg.Type)),
			zap.String("topic", msg.Topic),
		)

		switch msg.Type {
		case MessageTypeSubscribe:
			if msg.Topic != "" {
				c.Subscribe(msg.Topic)
			}
		case MessageTypeUnsubscribe:
			if msg.Topic != "" {
				c.Unsubscribe(msg.Topic)
			}
		case MessageTypeChat:
			h.handleChatMessage(c, msg)
		default:
			config.Logger.Warn("Unknown WebSocket message type",
				zap.String("type", string(msg.Type)),
				zap.String("clientID", c.ID.String()),
			)
			c.sendError("Unknown message type: " + string(msg.Type))
		}
	}
}

// writePump sends queued messages and keeps the connection alive
func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				// Hub closed the channel
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteJSON(message); err != nil {
				config.Logger.Debug("WebSocket write error",
					zap.String("clientID", c.ID.String()),
					zap.Error(err),
				)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			// Ping to keep the connection alive
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				config.Logger.Debug("WebSocket ping error",
					zap.String("clientID", c.ID.String()),
					zap.Error(err),
				)
				return
			}
		}
	}
}

// handleChatMessage persists an inbound chat message, then rebroadcasts it
// to the other participants of the thread.
func (h *WsHandler) handleChatMessage(c *Client, msg WebSocketMessage) {
	payload, ok := msg.Payload.(map[string]interface{})
	if !ok {
		c.sendError("Invalid chat message payload")
		return
	}

	threadID, hasThread := payload["threadId"].(string)
	content, hasContent := payload["content"].(string)

	if !hasThread || !hasContent || content == "" {
		c.sendError("Missing required fields in chat message")
		return
	}

	if _, err := uuid.Parse(threadID); err != nil {
		c.sendError("Invalid thread ID format")
		return
	}

	messageID, err := h.chat.SaveMessage(threadID, c.Email, content)
	if err != nil {
		config.Logger.Error("Failed to persist chat message",
			zap.Error(err),
			zap.String("threadID", threadID),
			zap.String("email", c.Email))
		c.sendError("Failed to save chat message: " + err.Error())
		return
	}

	payload["id"] = messageID.String()
	payload["senderEmail"] = c.Email
	msg.Payload = payload
	msg.Topic = threadID

	c.Hub.BroadcastToTopic(threadID, msg, c.ID)

	config.Logger.Debug("Chat message handled",
		zap.String("threadId", threadID),
		zap.String("messageId", messageID.String()),
		zap.String("email", c.Email))
}

// sendError sends an error message back to the client. Non-blocking: a
// client too backlogged to take the error must not stall its read pump.
func (c *Client) sendError(message string) {
	errorMsg := WebSocketMessage{
		Type: MessageTypeError,
		Payload: map[string]interface{}{
			"message": message,
		},
		Timestamp: time.Now(),
	}

	if err := c.SendMessage(errorMsg); err != nil {
		config.Logger.Debug("Dropped error frame for backlogged client",
			zap.String("clientID", c.ID.String()))
	}
}

// SendMessage sends a message to this specific client
func (c *Client) SendMessage(msg WebSocketMessage) error {
	select {
	case c.Send <- msg:
		return nil
	default:
		return fmt.Errorf("client send channel is full")
	}
}
