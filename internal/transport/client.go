package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/NachoToast/SpotifyQuiz/internal/model"
	"github.com/NachoToast/SpotifyQuiz/internal/services/session"
)

const (
	// writeWait is the time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// maxMessageSize bounds inbound frames; game messages are tiny
	maxMessageSize = 4096

	// sendBufferSize is the per-connection outbound queue; a client that
	// falls this far behind is dropped rather than blocking the room
	sendBufferSize = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client adapts one websocket connection to the session's Conn contract: a
// buffered outbound queue drained by a single write pump (which preserves
// per-connection ordering) and a read pump that dispatches typed events.
type Client struct {
	conn    *websocket.Conn
	session *session.Session
	logger  *slog.Logger

	send chan []byte
	done chan struct{}
	once sync.Once
}

// Ensure Client implements the session's connection contract
var _ session.Conn = (*Client)(nil)

// ServeWS upgrades the request and attaches the connection to the session
// under the candidate username. Blocks until the connection drops.
func ServeWS(w http.ResponseWriter, r *http.Request, sess *session.Session, username string, logger *slog.Logger) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}

	client := &Client{
		conn:    conn,
		session: sess,
		logger:  logger.With(slog.String("component", "ws"), slog.String("code", string(sess.Code()))),
		send:    make(chan []byte, sendBufferSize),
		done:    make(chan struct{}),
	}

	// Write pump first, so the welcome (or rejection) queued during join is
	// actually delivered
	go client.writePump()
	sess.HandleJoin(client, username)
	client.readPump()
}

// Send queues an event for the write pump. A full queue means the client is
// not consuming; it gets dropped so the room never stalls.
func (c *Client) Send(ev model.ServerEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		c.logger.Error("failed to marshal event", slog.String("event", ev.Event), slog.Any("error", err))
		return
	}

	select {
	case c.send <- data:
	case <-c.done:
	default:
		c.logger.Warn("dropping slow client", slog.String("event", ev.Event))
		c.Close()
	}
}

// Close tears the connection down. Idempotent.
func (c *Client) Close() {
	c.once.Do(func() {
		close(c.done)
	})
}

func (c *Client) writePump() {
	defer func() { _ = c.conn.Close() }()

	for {
		select {
		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-c.done:
			// Flush anything already queued before saying goodbye
			for {
				select {
				case data := <-c.send:
					_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
					if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
						return
					}
				default:
					_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
					_ = c.conn.WriteMessage(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
					return
				}
			}
		}
	}
}

// readPump decodes inbound events until the connection drops, then reports
// the disconnect to the session as a leave
func (c *Client) readPump() {
	defer func() {
		c.Close()
		c.session.HandleLeave(c)
	}()

	c.conn.SetReadLimit(maxMessageSize)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var ev model.ClientEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			continue
		}
		c.dispatch(ev)
	}
}

// dispatch routes one inbound event to the session. Unknown events and
// malformed payloads are dropped; host-only events are guarded inside the
// session, not here.
func (c *Client) dispatch(ev model.ClientEvent) {
	switch ev.Event {
	case model.EventChatMessage:
		var message string
		if err := json.Unmarshal(ev.Data, &message); err != nil {
			return
		}
		c.session.HandleChat(c, message)

	case model.EventGuessStateUpdate:
		answer, err := model.DecodeAnswerState(ev.Data)
		if err != nil {
			return
		}
		c.session.HandleGuessState(c, answer)

	case model.EventPlaylistSelected:
		var payload model.PlaylistSelectedPayload
		if err := json.Unmarshal(ev.Data, &payload); err != nil {
			return
		}
		c.session.HandlePlaylistSelected(c, payload.PlaylistID, payload.AccessToken)

	case model.EventStartGame:
		c.session.HandleStartGame(c)
	}
}
