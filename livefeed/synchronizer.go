// Package livefeed keeps an ordered, de-duplicated in-memory list in sync
// with a websocket topic. The dashboard uses it for the réclamation list:
// items created locally are appended optimistically, and the echo coming
// back from the server is dropped by the identifier check.
package livefeed

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"steg-backend/config"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Status of the underlying connection.
type Status int

const (
	StatusConnecting Status = iota
	StatusConnected
	StatusErrored
	StatusClosed
)

func (s Status) String() string {
	switch s {
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	case StatusErrored:
		return "errored"
	case StatusClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Item is one entry of the synced list. Identity comes from the "id" field
// of the payload, falling back to "code" for entities keyed by business code.
type Item map[string]interface{}

func (it Item) identity() string {
	if id, ok := it["id"].(string); ok && id != "" {
		return id
	}
	if code, ok := it["code"].(string); ok && code != "" {
		return code
	}
	return ""
}

// frame mirrors websocket.WebSocketMessage on the wire.
type frame struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
	Topic     string          `json:"topic,omitempty"`
}

// Options tunes a Synchronizer. The zero value matches the dashboard's
// defaults: no reconnect, standard dialer.
type Options struct {
	// Header is passed to the dial, e.g. for the Authorization bearer token.
	Header http.Header
	// Reconnect enables capped-backoff redial after a read failure.
	Reconnect bool
	// MaxBackoff caps the redial delay. Defaults to 30s when Reconnect is set.
	MaxBackoff time.Duration
	// Dialer overrides the websocket dialer, mainly for tests.
	Dialer *websocket.Dialer
}

// Synchronizer owns one websocket connection and the list it feeds.
type Synchronizer struct {
	endpoint string
	topics   []string
	onItem   func(Item)
	opts     Options

	mu     sync.RWMutex
	conn   *websocket.Conn
	status Status
	items  []Item
	seen   map[string]bool
	closed chan struct{}
	once   sync.Once
}

// New prepares a synchronizer for the given endpoint and topics. onItem may
// be nil; when set it runs to completion for each appended item before the
// next frame is read.
func New(endpointURL string, topics []string, onItem func(Item), opts Options) *Synchronizer {
	if opts.Reconnect && opts.MaxBackoff == 0 {
		opts.MaxBackoff = 30 * time.Second
	}
	if opts.Dialer == nil {
		opts.Dialer = websocket.DefaultDialer
	}
	return &Synchronizer{
		endpoint: endpointURL,
		topics:   topics,
		onItem:   onItem,
		opts:     opts,
		status:   StatusConnecting,
		seen:     make(map[string]bool),
		closed:   make(chan struct{}),
	}
}

// Open dials the endpoint, subscribes to the configured topics and starts
// the read loop. It returns once the connection is established.
func (s *Synchronizer) Open() error {
	conn, _, err := s.opts.Dialer.Dial(s.endpoint, s.opts.Header)
	if err != nil {
		s.setStatus(StatusErrored)
		return fmt.Errorf("livefeed dial %s: %w", s.endpoint, err)
	}

	s.mu.Lock()
	s.conn = conn
	s.status = StatusConnected
	s.mu.Unlock()

	for _, topic := range s.topics {
		sub := frame{Type: "SUBSCRIBE", Topic: topic, Timestamp: time.Now()}
		if err := conn.WriteJSON(sub); err != nil {
			conn.Close()
			s.setStatus(StatusErrored)
			return fmt.Errorf("livefeed subscribe %s: %w", topic, err)
		}
	}

	go s.readLoop(conn)
	return nil
}

func (s *Synchronizer) readLoop(conn *websocket.Conn) {
	for {
		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			select {
			case <-s.closed:
				return
			default:
			}

			config.Logger.Warn("livefeed read failed",
				zap.String("endpoint", s.endpoint),
				zap.Error(err),
			)
			s.setStatus(StatusErrored)
			conn.Close()

			if s.opts.Reconnect {
				s.redial()
			}
			return
		}

		s.handleFrame(f)
	}
}

func (s *Synchronizer) handleFrame(f frame) {
	if len(f.Payload) == 0 {
		return
	}

	var item Item
	if err := json.Unmarshal(f.Payload, &item); err != nil {
		config.Logger.Debug("livefeed dropped non-object payload",
			zap.String("type", f.Type),
			zap.Error(err),
		)
		return
	}

	s.append(item)
}

// append adds the item unless its identity was already seen. Items without
// an identity are always appended; there is nothing to collide on.
func (s *Synchronizer) append(item Item) {
	s.mu.Lock()
	id := item.identity()
	if id != "" {
		if s.seen[id] {
			s.mu.Unlock()
			return
		}
		s.seen[id] = true
	}
	s.items = append(s.items, item)
	handler := s.onItem
	s.mu.Unlock()

	if handler != nil {
		handler(item)
	}
}

// AppendLocal registers a locally created item before its server echo
// arrives. The echo will be dropped by the identity check.
func (s *Synchronizer) AppendLocal(item Item) {
	s.append(item)
}

// Items returns a snapshot of the list in arrival order.
func (s *Synchronizer) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Status reports the current connection state.
func (s *Synchronizer) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Close tears down the connection. Safe to call more than once.
func (s *Synchronizer) Close() error {
	var err error
	s.once.Do(func() {
		close(s.closed)
		s.mu.Lock()
		s.status = StatusClosed
		conn := s.conn
		s.conn = nil
		s.mu.Unlock()

		if conn != nil {
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			err = conn.Close()
		}
	})
	return err
}

func (s *Synchronizer) setStatus(st Status) {
	s.mu.Lock()
	s.status = st
	s.mu.Unlock()
}

// redial retries the dial with doubling backoff until it succeeds or the
// synchronizer is closed.
func (s *Synchronizer) redial() {
	backoff := time.Second
	for {
		select {
		case <-s.closed:
			return
		case <-time.After(backoff):
		}

		s.setStatus(StatusConnecting)
		if err := s.Open(); err == nil {
			return
		}

		backoff *= 2
		if backoff > s.opts.MaxBackoff {
			backoff = s.opts.MaxBackoff
		}
	}
}
