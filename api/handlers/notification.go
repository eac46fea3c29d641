package handlers

import (
	"net/http"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/linesmerrill/fiscal-cidadao/models"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 8
)

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// StateEvent is the frame pushed to a client whenever its session changes
type StateEvent struct {
	Event string          `json:"event"`
	Data  models.AppState `json:"data"`
}

type client struct {
	sessionID string
	conn      *websocket.Conn

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// push queues a frame, dropping it when the client is not keeping up. Every frame carries the
// full state, so a dropped one is superseded by the next.
func (c *client) push(frame []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- frame:
	default:
		zap.S().Debugw("dropping state frame for slow client", "session", c.sessionID)
	}
}

// Hub keeps the connected websocket clients
type Hub struct {
	clients map[*client]struct{}
	mutex   sync.Mutex
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

func (h *Hub) add(c *client) {
	h.mutex.Lock()
	h.clients[c] = struct{}{}
	h.mutex.Unlock()
}

func (h *Hub) remove(c *client) {
	h.mutex.Lock()
	delete(h.clients, c)
	h.mutex.Unlock()
	c.close()
}

// Len returns the number of connected clients
func (h *Hub) Len() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Close disconnects every client
func (h *Hub) Close() {
	h.mutex.Lock()
	clients := h.clients
	h.clients = make(map[*client]struct{})
	h.mutex.Unlock()
	for c := range clients {
		c.close()
	}
}

func stateFrame(st models.AppState) ([]byte, error) {
	return json.Marshal(StateEvent{Event: "state", Data: st})
}

// StateWebSocketHandler upgrades the connection and pushes the session state on every change
func (h *Hub) StateWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Warnw("WebSocket upgrade error", "session", s.ID, "error", err)
		return
	}

	c := &client{sessionID: s.ID, conn: conn, send: make(chan []byte, sendBuffer)}
	h.add(c)
	zap.S().Debugw("websocket connected", "session", s.ID)

	unsubscribe := s.Subscribe(func(st models.AppState) {
		frame, err := stateFrame(st)
		if err != nil {
			zap.S().Errorw("failed to marshal state frame", "session", s.ID, "error", err)
			return
		}
		c.push(frame)
	})

	if frame, err := stateFrame(s.Snapshot()); err == nil {
		c.push(frame)
	}

	go h.writePump(c)
	h.readPump(c)

	unsubscribe()
	h.remove(c)
	zap.S().Debugw("websocket disconnected", "session", s.ID)
}

// readPump consumes control frames until the peer goes away
func (h *Hub) readPump(c *client) {
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.NextReader(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				zap.S().Debugw("error sending state frame", "session", c.sessionID, "error", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
