// Package realtime pushes incident and alert changes to dashboard clients
// over WebSocket. Delivery is best effort: there is no replay, and a client
// that cannot keep up misses messages instead of slowing the publisher.
package realtime

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/models"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 32
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// the channel is unauthenticated and read-only, so any origin may subscribe
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Envelope is a server push
type Envelope struct {
	Type      string `json:"type"`
	Data      any    `json:"data,omitempty"`
	Message   string `json:"message,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

type inbound struct {
	Type string `json:"type"`
}

// Client is one live WebSocket connection
type Client struct {
	ID   uuid.UUID
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func (c *Client) shutdown() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// Hub is the registry of live clients
type Hub struct {
	clients map[*Client]struct{}
	mu      sync.RWMutex
	logger  *zap.SugaredLogger
}

// NewHub creates an empty hub
func NewHub(logger *zap.SugaredLogger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

// ServeWS handles GET /ws
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warnw("WebSocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		ID:   uuid.New(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}

	// registered before the greeting so a client that has read CONNECTED
	// is guaranteed to receive later publishes
	h.mu.Lock()
	h.clients[client] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()
	h.logger.Infow("WebSocket client connected", "client_id", client.ID, "clients", total)

	h.offer(client, mustEncode(Envelope{
		Type:    models.MessageConnected,
		Message: "Connected to EWERS real-time updates",
	}))

	go h.writePump(client)
	go h.readPump(client)
}

// Publish sends {type,data} to every connected client and returns how many
// accepted it. Clients with a full buffer are skipped.
func (h *Hub) Publish(msgType string, data any) int {
	msg, err := json.Marshal(Envelope{Type: msgType, Data: data})
	if err != nil {
		h.logger.Errorw("Failed to encode broadcast", "type", msgType, "error", err)
		return 0
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	reached := 0
	for client := range h.clients {
		if h.offer(client, msg) {
			reached++
		}
	}
	return reached
}

// Count returns the number of connected clients
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client
func (h *Hub) Close() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clients = make(map[*Client]struct{})
	h.mu.Unlock()

	deadline := time.Now().Add(time.Second)
	for _, c := range clients {
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"), deadline)
		c.shutdown()
	}
	h.logger.Infow("WebSocket hub closed", "clients", len(clients))
}

func (h *Hub) offer(client *Client, msg []byte) bool {
	select {
	case <-client.done:
		return false
	default:
	}
	select {
	case client.send <- msg:
		return true
	default:
		return false
	}
}

func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client]
	delete(h.clients, client)
	h.mu.Unlock()
	client.shutdown()
	if ok {
		h.logger.Infow("WebSocket client disconnected", "client_id", client.ID)
	}
}

func (h *Hub) readPump(client *Client) {
	defer h.unregister(client)

	client.conn.SetReadLimit(maxMessageSize)
	_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := client.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg inbound
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		if msg.Type == models.MessagePing {
			h.offer(client, mustEncode(Envelope{
				Type:      models.MessagePong,
				Timestamp: time.Now().UnixMilli(),
			}))
		}
	}
}

func (h *Hub) writePump(client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		h.unregister(client)
	}()

	for {
		select {
		case message := <-client.send:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-client.done:
			return
		}
	}
}

func mustEncode(e Envelope) []byte {
	b, err := json.Marshal(e)
	if err != nil {
		panic(err)
	}
	return b
}
