package collab

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// upgrader has permissive CORS: the relay is a same-process demo
// transport, not a hardened public endpoint.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client is one connected editor: a send queue drained by a dedicated
// writer goroutine, so a slow peer never blocks the relay's owner
// goroutine.
//
// unconfirmed is the count of steps this client has published since the
// relay last forwarded something to it — the local steps it has in
// flight, not yet reconciled against any interleaving remote edit. It is
// only ever touched from Run's goroutine, never from readPump/writePump
// directly.
type Client struct {
	ID          uuid.UUID
	conn        *websocket.Conn
	send        chan []byte
	unconfirmed int
}

type publishedMessage struct {
	from    uuid.UUID
	payload []byte
}

// Relay forwards compressed Action payloads between every connected
// client but the one that sent them (P10). Its session map is only ever
// touched from the single goroutine running Run; register/unregister/
// publish are channel handoffs, matching SPEC_FULL.md §5's concurrency
// model.
type Relay struct {
	logger     *slog.Logger
	register   chan *Client
	unregister chan *Client
	publish    chan publishedMessage
	clients    map[uuid.UUID]*Client
}

// NewRelay builds an idle Relay; call Run to start its owner goroutine.
func NewRelay(logger *slog.Logger) *Relay {
	return &Relay{
		logger:     logger,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		publish:    make(chan publishedMessage),
		clients:    make(map[uuid.UUID]*Client),
	}
}

// Run owns the client map until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for _, c := range r.clients {
				close(c.send)
			}
			return
		case c := <-r.register:
			r.clients[c.ID] = c
		case c := <-r.unregister:
			if _, ok := r.clients[c.ID]; ok {
				delete(r.clients, c.ID)
				close(c.send)
			}
		case m := <-r.publish:
			r.forward(m)
		}
	}
}

// forward distributes one published action to every client but its
// sender (P10). SPEC_FULL.md §4.J requires forwarded actions to be
// marked rebased against the receiving client's own unconfirmed-steps
// count, so each recipient gets its own copy of the action with Rebased
// stamped to its current count before that count resets to 0 — the
// remote prefix this message carries rebases exactly that many trailing
// local steps away.
func (r *Relay) forward(m publishedMessage) {
	action, err := decodeAction(m.payload)
	if err != nil {
		r.logger.Error("collab action did not decode", "from", m.from, "err", err)
		return
	}

	if sender, ok := r.clients[m.from]; ok {
		sender.unconfirmed += len(action.Steps)
	}

	for id, c := range r.clients {
		if id == m.from {
			continue
		}

		rebased := c.unconfirmed
		out := action
		out.Rebased = &rebased
		encoded, err := json.Marshal(out)
		if err != nil {
			r.logger.Error("collab action did not encode", "to", id, "err", err)
			continue
		}

		select {
		case c.send <- compressPayload(encoded):
			c.unconfirmed = 0
		default:
			r.logger.Warn("dropping slow collab client", "client", id)
			delete(r.clients, id)
			close(c.send)
		}
	}
}

// ServeWS upgrades req to a WebSocket connection, registers a Client with
// the relay, and runs its read/write pumps until the connection closes.
func ServeWS(r *Relay, w http.ResponseWriter, req *http.Request) {
	conn, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		r.logger.Error("collab upgrade failed", "err", err)
		return
	}

	c := &Client{ID: uuid.New(), conn: conn, send: make(chan []byte, 16)}
	r.register <- c

	go c.writePump(r)
	c.readPump(r)
}

func (c *Client) readPump(r *Relay) {
	defer func() {
		r.unregister <- c
		c.conn.Close()
	}()
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				r.logger.Warn("collab client dropped", "client", c.ID, "err", err)
			}
			return
		}
		payload, err := decompressPayload(raw)
		if err != nil {
			r.logger.Error("collab payload did not decompress", "client", c.ID, "err", err)
			continue
		}
		r.publish <- publishedMessage{from: c.ID, payload: payload}
	}
}

func (c *Client) writePump(r *Relay) {
	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.BinaryMessage, payload); err != nil {
			r.logger.Warn("collab write failed", "client", c.ID, "err", err)
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
