package ws

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"

	"messaging-service/internal/auth"
	"messaging-service/internal/observability"
)

// ThreadWebSocketHandler upgrades clients onto a thread topic plus their own
// user topic, so one socket carries thread events and personal events
// (conversation list changes, notifications) alike.
type ThreadWebSocketHandler struct {
	hub    *Hub
	tokens *auth.TokenManager
}

// NewThreadWebSocketHandler constructs a ThreadWebSocketHandler.
func NewThreadWebSocketHandler(hub *Hub, tokens *auth.TokenManager) *ThreadWebSocketHandler {
	return &ThreadWebSocketHandler{hub: hub, tokens: tokens}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handle upgrades the connection and subscribes it until the peer goes away.
func (h *ThreadWebSocketHandler) Handle(c *gin.Context) {
	counterpartID, err := strconv.Atoi(c.Param("counterpart_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid counterpart id"})
		return
	}

	ctx, span := otel.Tracer("messaging-service/ws").Start(c.Request.Context(), "ws.handshake")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	token := c.Query("token")
	if token == "" {
		token = bearerToken(c.GetHeader("Authorization"))
	}
	userID, err := h.tokens.Validate(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	if userID == counterpartID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot open a thread with yourself"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	info := ConnInfo{
		ConnID:      newConnID(),
		UserID:      userID,
		DeviceID:    observability.DeviceIDFromRequest(c.Request),
		IP:          observability.IPFromRequest(c.Request),
		RequestID:   observability.RequestIDFromRequest(c.Request),
		TraceID:     span.SpanContext().TraceID().String(),
		ConnectedAt: time.Now(),
	}

	threadTopic := ThreadTopic(userID, counterpartID)
	userTopic := UserTopic(userID)
	h.hub.Subscribe(threadTopic, conn, info)
	h.hub.Subscribe(userTopic, conn, info)

	observability.IncWSActive("thread")
	observability.IncWSEvent("thread", "ws_connect")
	publishWSEvent(ctx, "ws_connect", threadTopic, info, "")

	// The read loop exists to detect peer disconnects; teardown must remove
	// the connection from every topic it joined or the hub leaks
	// subscriptions that keep receiving irrelevant events.
	go func() {
		var closeReason string
		defer func() {
			h.hub.Unsubscribe(threadTopic, conn)
			h.hub.Unsubscribe(userTopic, conn)
			observability.DecWSActive("thread")
			observability.IncWSEvent("thread", "ws_disconnect")
			publishWSEvent(ctx, "ws_disconnect", threadTopic, info, closeReason)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				closeReason = err.Error()
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					observability.IncWSEvent("thread", "ws_error")
					publishWSEvent(ctx, "ws_error", threadTopic, info, closeReason)
				}
				return
			}
		}
	}()
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}
