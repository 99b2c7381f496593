package livefeed

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// feedServer upgrades one connection, waits for the SUBSCRIBE frames, then
// pushes the given payload frames in order.
func feedServer(t *testing.T, subscribeCount int, frames []string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		for i := 0; i < subscribeCount; i++ {
			var sub frame
			require.NoError(t, conn.ReadJSON(&sub))
			require.Equal(t, "SUBSCRIBE", sub.Type)
		}

		for _, f := range frames {
			require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(f)))
		}

		// Hold the connection open until the client goes away.
		conn.ReadMessage()
	}))
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func waitForItems(t *testing.T, s *Synchronizer, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(s.Items()) >= n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d items, have %d", n, len(s.Items()))
}

func TestSynchronizerAppendsInArrivalOrder(t *testing.T) {
	frames := []string{
		`{"type":"RECLAMATION_CREATED","topic":"reclamations","payload":{"id":"a1","code":"REC-00000001"}}`,
		`{"type":"RECLAMATION_CREATED","topic":"reclamations","payload":{"id":"b2","code":"REC-00000002"}}`,
		`{"type":"RECLAMATION_CREATED","topic":"reclamations","payload":{"id":"c3","code":"REC-00000003"}}`,
	}
	srv := feedServer(t, 1, frames)
	defer srv.Close()

	s := New(wsURL(srv), []string{"reclamations"}, nil, Options{})
	require.NoError(t, s.Open())
	defer s.Close()

	waitForItems(t, s, 3)
	items := s.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "a1", items[0]["id"])
	assert.Equal(t, "b2", items[1]["id"])
	assert.Equal(t, "c3", items[2]["id"])
	assert.Equal(t, StatusConnected, s.Status())
}

func TestSynchronizerDropsDuplicateIdentity(t *testing.T) {
	frames := []string{
		`{"type":"RECLAMATION_CREATED","payload":{"id":"dup","code":"REC-00000009"}}`,
		`{"type":"RECLAMATION_CREATED","payload":{"id":"dup","code":"REC-00000009"}}`,
		`{"type":"RECLAMATION_CREATED","payload":{"id":"other","code":"REC-00000010"}}`,
	}
	srv := feedServer(t, 1, frames)
	defer srv.Close()

	s := New(wsURL(srv), []string{"reclamations"}, nil, Options{})
	require.NoError(t, s.Open())
	defer s.Close()

	waitForItems(t, s, 2)
	time.Sleep(50 * time.Millisecond)
	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "dup", items[0]["id"])
	assert.Equal(t, "other", items[1]["id"])
}

func TestSynchronizerOptimisticEchoDropped(t *testing.T) {
	frames := []string{
		`{"type":"RECLAMATION_CREATED","payload":{"id":"local-1","code":"REC-00000011"}}`,
	}
	srv := feedServer(t, 1, frames)
	defer srv.Close()

	s := New(wsURL(srv), []string{"reclamations"}, nil, Options{})
	require.NoError(t, s.Open())
	defer s.Close()

	// Local append first; the server echo of the same id must not duplicate it.
	s.AppendLocal(Item{"id": "local-1", "code": "REC-00000011"})

	time.Sleep(100 * time.Millisecond)
	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "local-1", items[0]["id"])
}

func TestSynchronizerFallsBackToCodeIdentity(t *testing.T) {
	frames := []string{
		`{"type":"RECLAMATION_CREATED","payload":{"code":"REC-00000042"}}`,
		`{"type":"RECLAMATION_CREATED","payload":{"code":"REC-00000042"}}`,
	}
	srv := feedServer(t, 1, frames)
	defer srv.Close()

	s := New(wsURL(srv), []string{"reclamations"}, nil, Options{})
	require.NoError(t, s.Open())
	defer s.Close()

	waitForItems(t, s, 1)
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, s.Items(), 1)
}

func TestSynchronizerHandlerRunsPerItem(t *testing.T) {
	frames := []string{
		`{"type":"RECLAMATION_CREATED","payload":{"id":"h1"}}`,
		`{"type":"RECLAMATION_CREATED","payload":{"id":"h2"}}`,
	}
	srv := feedServer(t, 1, frames)
	defer srv.Close()

	var mu sync.Mutex
	var got []string
	s := New(wsURL(srv), []string{"reclamations"}, func(it Item) {
		mu.Lock()
		got = append(got, it["id"].(string))
		mu.Unlock()
	}, Options{})
	require.NoError(t, s.Open())
	defer s.Close()

	waitForItems(t, s, 2)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"h1", "h2"}, got)
}

func TestSynchronizerCloseIdempotent(t *testing.T) {
	srv := feedServer(t, 1, nil)
	defer srv.Close()

	s := New(wsURL(srv), []string{"reclamations"}, nil, Options{})
	require.NoError(t, s.Open())

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.Equal(t, StatusClosed, s.Status())
}

func TestSynchronizerDialFailure(t *testing.T) {
	s := New("ws://127.0.0.1:1/feed", []string{"reclamations"}, nil, Options{
		Dialer: &websocket.Dialer{HandshakeTimeout: 200 * time.Millisecond},
	})
	err := s.Open()
	require.Error(t, err)
	assert.Equal(t, StatusErrored, s.Status())
}
