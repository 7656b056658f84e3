// Package feed pushes roster changes to WebSocket subscribers and answers
// allocation requests over the same connection.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/dkeye/ExamRooms/internal/app"
	"github.com/dkeye/ExamRooms/internal/app/orch"
	"github.com/dkeye/ExamRooms/internal/core"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var ErrBackpressure = errors.New("backpressure")

const sendBuffer = 32

type Options struct {
	ReadLimit  int64
	PingPeriod time.Duration
}

// Hub tracks live subscribers. It implements core.RosterListener.
type Hub struct {
	orch   *orch.Orchestrator
	policy app.Policy
	opts   Options

	mu   sync.RWMutex
	subs map[string]*Conn
}

var _ core.RosterListener = (*Hub)(nil)

// NewHub creates a hub and subscribes it to roster changes.
func NewHub(o *orch.Orchestrator, policy app.Policy, opts Options) *Hub {
	if opts.PingPeriod <= 0 {
		opts.PingPeriod = 54 * time.Second
	}
	if opts.ReadLimit <= 0 {
		opts.ReadLimit = 32768
	}
	h := &Hub{
		orch:   o,
		policy: policy,
		opts:   opts,
		subs:   make(map[string]*Conn),
	}
	o.Subscribe(h)
	return h
}

// WSConn is the part of *websocket.Conn the pumps use.
type WSConn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(mt int, data []byte) error
	WriteControl(mt int, data []byte, deadline time.Time) error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
	Close() error
}

var _ WSConn = (*websocket.Conn)(nil)

// Conn is one subscriber's WebSocket endpoint.
type Conn struct {
	id   string
	conn WSConn
	send chan []byte

	mu     sync.RWMutex
	closed bool
}

func (c *Conn) TrySend(b []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- b:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *Conn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (h *Hub) OnRoster(ev core.RosterEvent) {
	b, err := json.Marshal(rosterMessage(ev))
	if err != nil {
		log.Error().Err(err).Str("module", "feed").Msg("marshal roster")
		return
	}

	h.mu.RLock()
	subs := make([]*Conn, 0, len(h.subs))
	for _, c := range h.subs {
		subs = append(subs, c)
	}
	h.mu.RUnlock()

	for _, c := range subs {
		err := c.TrySend(b)
		if !errors.Is(err, ErrBackpressure) {
			continue
		}
		action := app.DropSubscriber
		if h.policy != nil {
			action = h.policy.OnBackPressure(c.id)
		}
		switch action {
		case app.DropSubscriber:
			log.Warn().Str("module", "feed").Str("sub", c.id).Msg("dropping slow subscriber")
			h.unregister(c)
		case app.DropEvent, app.NoAction:
		}
	}
}

func (h *Hub) register(c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs[c.id] = c
}

func (h *Hub) unregister(c *Conn) {
	h.mu.Lock()
	delete(h.subs, c.id)
	h.mu.Unlock()
	c.Close()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handle upgrades the request and serves the subscriber until ctx is done or
// the client goes away.
func (h *Hub) Handle(ctx context.Context, c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "feed").Msg("ws upgrade")
		return
	}
	ws.SetReadLimit(h.opts.ReadLimit)

	conn := &Conn{
		id:   uuid.NewString(),
		conn: ws,
		send: make(chan []byte, sendBuffer),
	}
	h.register(conn)
	log.Info().Str("module", "feed").Str("sub", conn.id).Str("client", c.GetString("client_token")).Msg("subscriber connected")

	h.sendJSON(conn, rosterMessage(h.orch.Roster()))

	ctx, cancel := context.WithCancel(ctx)
	go h.writePump(ctx, conn)
	go func() {
		defer cancel()
		h.readPump(ctx, conn)
	}()
}
