package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/TraderJoe97/StackFlow/internal/api/middleware"
	"github.com/TraderJoe97/StackFlow/internal/notify"
	"github.com/TraderJoe97/StackFlow/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || middleware.OriginAllowed(origin)
	},
}

// DashboardSocket streams change events to connected dashboards.
type DashboardSocket struct {
	hub *notify.Hub
}

func NewDashboardSocket(hub *notify.Hub) *DashboardSocket {
	return &DashboardSocket{hub: hub}
}

// Serve godoc
// @Summary Live change events
// @Description Upgrades to a websocket. Each text frame is {"event": name, "args": [action, id, prior_status?]}.
// @Tags dashboard
// @Security BearerAuth
// @Router /ws/dashboard [get]
func (h *DashboardSocket) Serve(c *gin.Context) {
	uid, _ := utils.GetUserIDFromContext(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		slog.Warn("websocket upgrade failed", "user_id", uid, "error", err)
		return
	}

	sub := h.hub.Subscribe()
	slog.Debug("dashboard connected", "user_id", uid, "subscriber", sub.ID)

	done := make(chan struct{})
	go h.writePump(conn, sub, done)

	// Reader loop: clients only send pongs and close frames.
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("dashboard socket error", "subscriber", sub.ID, "error", err)
			}
			break
		}
	}

	h.hub.Unsubscribe(sub)
	<-done
	slog.Debug("dashboard disconnected", "user_id", uid, "subscriber", sub.ID)
}

func (h *DashboardSocket) writePump(conn *websocket.Conn, sub *notify.Subscription, done chan<- struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
		close(done)
	}()

	for {
		select {
		case msg, ok := <-sub.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.hub.Unsubscribe(sub)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.hub.Unsubscribe(sub)
				return
			}
		}
	}
}
