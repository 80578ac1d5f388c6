package transport

import (
	"log/slog"
	"sync"

	"github.com/NachoToast/SpotifyQuiz/internal/model"
	"github.com/NachoToast/SpotifyQuiz/internal/services/session"
)

// Hub is the room for one game: the set of live connections and the broadcast
// primitive the session drives. Calls are synchronous so the session's
// welcome / announce / admit ordering is preserved exactly.
type Hub struct {
	logger *slog.Logger

	mu     sync.Mutex
	conns  map[session.Conn]struct{}
	closed bool
}

// Ensure Hub implements the session's room contract
var _ session.Room = (*Hub)(nil)

// NewHub creates an empty Hub for a game
func NewHub(code model.GameCode, logger *slog.Logger) *Hub {
	return &Hub{
		logger: logger.With(slog.String("component", "hub"), slog.String("code", string(code))),
		conns:  make(map[session.Conn]struct{}),
	}
}

// Add registers a connection for future broadcasts
func (h *Hub) Add(c session.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		c.Close()
		return
	}
	h.conns[c] = struct{}{}
	h.logger.Debug("connection added", slog.Int("total", len(h.conns)))
}

// Remove forgets a connection without closing it
func (h *Hub) Remove(c session.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, c)
}

// Broadcast sends an event to every member. Send never blocks; a member that
// cannot keep up is disconnected by its own backpressure handling.
func (h *Hub) Broadcast(ev model.ServerEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	for c := range h.conns {
		c.Send(ev)
	}
}

// Close disconnects every member and rejects future adds
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for c := range h.conns {
		c.Close()
	}
	h.conns = nil
	h.logger.Debug("hub closed")
}

// Size returns the current member count
func (h *Hub) Size() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}
