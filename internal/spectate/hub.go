// Package spectate fans game snapshots out to websocket spectators.
package spectate

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-snake/internal/game"
)

// sendBuffer is the per-client queue. A spectator that falls this far
// behind loses frames instead of stalling the game.
const sendBuffer = 32

// Sink receives a snapshot after every engine mutation.
type Sink interface {
	Publish(session string, snap game.Snapshot)
}

// Frame is the JSON message sent to spectators.
type Frame struct {
	Session  string        `json:"session"`
	Snapshot game.Snapshot `json:"snapshot"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks connected spectators and the latest frame of every session.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	latest  map[string][]byte
	closed  bool
	logger  *log.Logger

	upgrader websocket.Upgrader
}

var _ Sink = (*Hub)(nil)

// NewHub creates an empty hub. A nil logger discards output.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		clients: make(map[*client]struct{}),
		latest:  make(map[string][]byte),
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Publish broadcasts a snapshot. It never blocks: clients with a full
// queue skip the frame.
func (h *Hub) Publish(session string, snap game.Snapshot) {
	out, err := json.Marshal(Frame{Session: session, Snapshot: snap})
	if err != nil {
		h.logger.Error("cannot encode frame", "session", session, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.latest[session] = out
	for c := range h.clients {
		select {
		case c.send <- out:
		default:
		}
	}
}

// Forget drops the cached frame of a finished session.
func (h *Hub) Forget(session string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.latest, session)
}

// Handler upgrades the request and serves one spectator until it leaves.
func (h *Hub) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
			return
		}
		h.HandleWS(conn)
	}
}

// HandleWS registers conn, replays the latest frame of every live session
// and blocks until the spectator disconnects.
func (h *Hub) HandleWS(conn *websocket.Conn) {
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	for _, frame := range h.latest {
		select {
		case c.send <- frame:
		default:
		}
	}
	h.mu.Unlock()

	h.logger.Info("spectator joined", "remote", conn.RemoteAddr().String())
	go c.writer()
	c.reader(h)
}

// Count returns the number of connected spectators.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every spectator and stops accepting new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// reader drains incoming messages; spectators only listen.
func (c *client) reader(h *Hub) {
	defer func() {
		h.remove(c)
		c.conn.Close()
		h.logger.Info("spectator left", "remote", c.conn.RemoteAddr().String())
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writer() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	// Channel closed by the hub: say goodbye politely.
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, "server closing"))
}
