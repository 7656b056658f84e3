package feed

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dkeye/ExamRooms/internal/core"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const writeWait = 5 * time.Second

func (h *Hub) writePump(ctx context.Context, c *Conn) {
	ticker := time.NewTicker(h.opts.PingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("module", "feed").Str("sub", c.id).Msg("writePump ctx done")
			h.unregister(c)
			return
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				log.Warn().Err(err).Str("module", "feed").Str("sub", c.id).Msg("writePump ping")
				h.unregister(c)
				return
			}
		case data, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Error().Err(err).Str("module", "feed").Msg("writePump set deadline")
				h.unregister(c)
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Warn().Err(err).Str("module", "feed").Str("sub", c.id).Msg("writePump write")
				h.unregister(c)
				return
			}
		}
	}
}

func (h *Hub) readPump(ctx context.Context, c *Conn) {
	defer func() {
		log.Info().Str("module", "feed").Str("sub", c.id).Msg("subscriber closed")
		h.unregister(c)
	}()

	pongWait := h.opts.PingPeriod * 10 / 9
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		select {
		case <-ctx.Done():
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Warn().Err(err).Str("module", "feed").Str("sub", c.id).Msg("readPump read")
				}
				return
			}
			h.handleMessage(c, data)
		}
	}
}

func (h *Hub) handleMessage(c *Conn, data []byte) {
	var env struct {
		Type     string `json:"type"`
		Students int    `json:"students"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		h.sendJSON(c, errorMessage(core.ErrorDTO{Code: core.CodeValidation, Error: "bad json"}))
		return
	}

	switch env.Type {
	case "ping":
		h.sendJSON(c, message{Type: "pong"})
	case "rooms":
		h.sendJSON(c, rosterMessage(h.orch.Roster()))
	case "allocate":
		alloc, err := h.orch.Allocate(env.Students)
		if err != nil {
			h.sendJSON(c, errorMessage(core.DescribeError(err)))
			return
		}
		dto := core.NewAllocationDTO(alloc)
		h.sendJSON(c, message{Type: "allocation", Allocation: &dto})
	default:
		log.Warn().Str("module", "feed").Str("type", env.Type).Msg("unknown message")
		h.sendJSON(c, errorMessage(core.ErrorDTO{Code: core.CodeValidation, Error: "unknown message type"}))
	}
}

func (h *Hub) sendJSON(c *Conn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "feed").Msg("sendJSON marshal")
		return
	}
	_ = c.TrySend(b)
}
