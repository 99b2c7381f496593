package websocket

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(h *Hub, topics ...string) *Client {
	c := &Client{
		ID:   uuid.New(),
		Hub:  h,
		Send: make(chan WebSocketMessage, 8),
	}
	for _, topic := range topics {
		c.Subscribe(topic)
	}
	return c
}

func receive(t *testing.T, c *Client) WebSocketMessage {
	t.Helper()
	select {
	case msg := <-c.Send:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return WebSocketMessage{}
	}
}

func assertNothingQueued(t *testing.T, c *Client) {
	t.Helper()
	select {
	case msg := <-c.Send:
		t.Fatalf("unexpected message: %+v", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBroadcastToTopicOnlyReachesSubscribers(t *testing.T) {
	h := NewHub()

	dashboard := newTestClient(h, TopicReclamations)
	calendar := newTestClient(h, TopicCalendar)
	both := newTestClient(h, TopicReclamations, TopicCalendar)

	h.clients[dashboard] = true
	h.clients[calendar] = true
	h.clients[both] = true

	h.BroadcastToTopic(TopicReclamations, WebSocketMessage{
		Type:      MessageTypeReclamation,
		Payload:   map[string]interface{}{"code": "REC-2026-0001"},
		Timestamp: time.Now(),
		Topic:     TopicReclamations,
	})

	msg := receive(t, dashboard)
	assert.Equal(t, MessageTypeReclamation, msg.Type)
	assert.Equal(t, TopicReclamations, msg.Topic)

	receive(t, both)
	assertNothingQueued(t, calendar)
}

func TestBroadcastToTopicExcludesSender(t *testing.T) {
	h := NewHub()

	threadID := uuid.New().String()
	sender := newTestClient(h, threadID)
	other := newTestClient(h, threadID)

	h.clients[sender] = true
	h.clients[other] = true

	h.BroadcastToTopic(threadID, WebSocketMessage{
		Type:      MessageTypeChat,
		Payload:   map[string]interface{}{"content": "bonjour"},
		Timestamp: time.Now(),
		Topic:     threadID,
	}, sender.ID)

	receive(t, other)
	assertNothingQueued(t, sender)
}

func TestRegisterUnregisterThroughRun(t *testing.T) {
	h := NewHub()
	go h.Run()

	client := newTestClient(h, TopicReclamations)
	h.register <- client

	require.Eventually(t, func() bool {
		return h.GetClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	h.unregister <- client

	require.Eventually(t, func() bool {
		return h.GetClientCount() == 0
	}, time.Second, 10*time.Millisecond)

	// Send channel is closed on unregister.
	_, open := <-client.Send
	assert.False(t, open)
}

func TestConcurrentBroadcastsDropBackloggedClients(t *testing.T) {
	h := NewHub()

	// Zero-capacity Send channels: every broadcast hits the slow-client
	// branch, so concurrent broadcasts all contend on removal.
	for i := 0; i < 4; i++ {
		c := &Client{
			ID:   uuid.New(),
			Hub:  h,
			Send: make(chan WebSocketMessage),
		}
		c.Subscribe(TopicReclamations)
		h.clients[c] = true
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.BroadcastToTopic(TopicReclamations, WebSocketMessage{
				Type:      MessageTypeReclamation,
				Timestamp: time.Now(),
				Topic:     TopicReclamations,
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, h.GetClientCount())
}

func TestSendErrorDoesNotBlockOnFullBuffer(t *testing.T) {
	c := &Client{
		ID:   uuid.New(),
		Send: make(chan WebSocketMessage, 1),
	}
	c.Send <- WebSocketMessage{Type: MessageTypeChat}

	done := make(chan struct{})
	go func() {
		c.sendError("unknown message type")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sendError blocked on a full send buffer")
	}

	// The queued message is untouched; the error frame was dropped.
	assert.Equal(t, MessageTypeChat, (<-c.Send).Type)
	assertNothingQueued(t, c)
}

func TestSubscriptionLifecycle(t *testing.T) {
	h := NewHub()
	client := newTestClient(h)

	assert.False(t, client.IsSubscribed(TopicCalendar))

	client.Subscribe(TopicCalendar)
	assert.True(t, client.IsSubscribed(TopicCalendar))

	client.Unsubscribe(TopicCalendar)
	assert.False(t, client.IsSubscribed(TopicCalendar))

	h.clients[client] = true
	assert.Empty(t, h.GetTopicSubscribers(TopicCalendar))

	client.Subscribe(TopicCalendar)
	assert.Len(t, h.GetTopicSubscribers(TopicCalendar), 1)
}
