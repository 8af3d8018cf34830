package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/models"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type received struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Message   string          `json:"message"`
	Timestamp int64           `json:"timestamp"`
}

func newTestHub(t *testing.T) (*Hub, string) {
	t.Helper()
	hub := NewHub(zap.NewNop().Sugar())
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	msg := read(t, conn)
	require.Equal(t, models.MessageConnected, msg.Type)
	assert.NotEmpty(t, msg.Message)
	return conn
}

func read(t *testing.T, conn *websocket.Conn) received {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg received
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestPingPong(t *testing.T) {
	_, url := newTestHub(t)
	conn := dial(t, url)

	before := time.Now().UnixMilli()
	require.NoError(t, conn.WriteJSON(map[string]string{"type": models.MessagePing}))
	msg := read(t, conn)
	assert.Equal(t, models.MessagePong, msg.Type)
	assert.GreaterOrEqual(t, msg.Timestamp, before)
}

func TestUnknownMessagesIgnored(t *testing.T) {
	_, url := newTestHub(t)
	conn := dial(t, url)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	require.NoError(t, conn.WriteJSON(map[string]string{"type": "SUBSCRIBE"}))
	require.NoError(t, conn.WriteJSON(map[string]string{"type": models.MessagePing}))

	assert.Equal(t, models.MessagePong, read(t, conn).Type)
}

func TestPublishFanOut(t *testing.T) {
	hub, url := newTestHub(t)
	a := dial(t, url)
	b := dial(t, url)

	reached := hub.Publish(models.MessageNewIncident, map[string]any{"id": 1, "title": "Flood"})
	assert.Equal(t, 2, reached)

	for _, conn := range []*websocket.Conn{a, b} {
		msg := read(t, conn)
		assert.Equal(t, models.MessageNewIncident, msg.Type)
		assert.JSONEq(t, `{"id":1,"title":"Flood"}`, string(msg.Data))
	}
}

func TestClosedClientIsDropped(t *testing.T) {
	hub, url := newTestHub(t)
	open := dial(t, url)
	closed := dial(t, url)
	require.Equal(t, 2, hub.Count())

	require.NoError(t, closed.Close())
	assert.Eventually(t, func() bool { return hub.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, 1, hub.Publish(models.MessageNewAlert, map[string]int{"id": 3}))
	assert.Equal(t, models.MessageNewAlert, read(t, open).Type)
}

func TestPublishWithoutClients(t *testing.T) {
	hub := NewHub(zap.NewNop().Sugar())
	assert.Equal(t, 0, hub.Publish(models.MessageUpdateIncident, nil))
}

func TestCloseDisconnectsClients(t *testing.T) {
	hub, url := newTestHub(t)
	conn := dial(t, url)

	hub.Close()
	assert.Equal(t, 0, hub.Count())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}
