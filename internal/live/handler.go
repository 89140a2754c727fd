package live

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	matchModel "github.com/clubdesk/matchday/internal/match/model"
	"github.com/clubdesk/matchday/internal/response"
)

// MatchReader loads the match a subscriber asks for.
type MatchReader interface {
	GetMatch(ctx context.Context, id string) (*matchModel.Match, error)
}

func (h *Hub) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(h.cfg.AllowedOrigins) == 0 {
		return true
	}
	for _, allowed := range h.cfg.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// Handler serves GET /api/matches/:id/live. The current snapshot is sent
// right after the upgrade, later ones whenever the match changes.
func (h *Hub) Handler(matches MatchReader) gin.HandlerFunc {
	upgrader := websocket.Upgrader{CheckOrigin: h.checkOrigin}

	return func(c *gin.Context) {
		id := c.Param("id")
		match, err := matches.GetMatch(c.Request.Context(), id)
		if err != nil {
			response.FromError(c, h.logger, err, "error loading live match", "match_id", id)
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			h.logger.Warnw("live upgrade failed", "match_id", id, "error", err)
			return
		}

		sub := &subscriber{matchID: match.ID, send: make(chan []byte, h.cfg.SendBuffer)}
		if !h.add(sub) {
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
				time.Now().Add(h.cfg.WriteTimeout))
			_ = conn.Close()
			return
		}
		h.logger.Debugw("live subscriber connected", "match_id", match.ID, "subscribers", h.Subscribers(match.ID))

		// Reload after registering so a change committed in between is not lost.
		current, err := matches.GetMatch(c.Request.Context(), match.ID)
		if err != nil {
			h.logger.Debugw("live match gone before first snapshot", "match_id", match.ID, "error", err)
			h.remove(sub)
			_ = conn.Close()
			return
		}
		initial, err := encode(current)
		if err != nil {
			h.logger.Errorw("failed to encode match snapshot", "match_id", match.ID, "error", err)
			h.remove(sub)
			_ = conn.Close()
			return
		}
		h.prime(sub, initial)

		go h.writePump(conn, sub)
		h.readPump(conn, sub)
	}
}

// writePump drains sub.send into conn and keeps the connection alive with pings.
func (h *Hub) writePump(conn *websocket.Conn, sub *subscriber) {
	ticker := time.NewTicker(h.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case payload, ok := <-sub.send:
			_ = conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				h.logger.Debugw("live write failed", "match_id", sub.matchID, "error", err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards client frames until the connection closes. Pongs extend
// the read deadline.
func (h *Hub) readPump(conn *websocket.Conn, sub *subscriber) {
	defer func() {
		h.remove(sub)
		_ = conn.Close()
	}()

	conn.SetReadLimit(h.cfg.ReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(h.cfg.PongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.cfg.PongTimeout))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				h.logger.Warnw("live connection closed unexpectedly", "match_id", sub.matchID, "error", err)
			}
			return
		}
	}
}
