package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"messaging-service/internal/apperrors"
	"messaging-service/internal/models"
	"messaging-service/internal/observability"
	"messaging-service/internal/presence"
	"messaging-service/internal/ws"
)

// PresenceHandler manages typing-presence signals.
type PresenceHandler struct {
	typing presence.Tracker
	hub    *ws.Hub
}

// NewPresenceHandler builds a PresenceHandler.
func NewPresenceHandler(typing presence.Tracker, hub *ws.Hub) *PresenceHandler {
	return &PresenceHandler{typing: typing, hub: hub}
}

// IndicateTyping upserts the caller's typing flag toward a counterpart.
// Repeated calls within the window refresh the expiry rather than stacking
// records; the single key per pair makes concurrent bursts last-write-wins.
func (h *PresenceHandler) IndicateTyping(c *gin.Context) {
	userID := c.GetInt("userID")

	var req struct {
		CounterpartID int `json:"counterpart_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.CounterpartID == userID {
		respondError(c, apperrors.Validation("cannot type at yourself"), "invalid request")
		return
	}

	if err := h.typing.Indicate(c.Request.Context(), userID, req.CounterpartID); err != nil {
		respondError(c, apperrors.Transient(err), "failed to record typing")
		return
	}
	observability.IncTypingSignal("start")

	if h.hub != nil {
		h.hub.Broadcast(ws.ThreadTopic(userID, req.CounterpartID), models.ThreadEvent{
			Type:      models.EventTypingStarted,
			ThreadKey: ws.ThreadTopic(userID, req.CounterpartID),
			UserID:    userID,
		})
	}
	c.Status(http.StatusNoContent)
}

// StopTyping deletes the caller's typing flag toward a counterpart. Safe to
// call when no flag exists.
func (h *PresenceHandler) StopTyping(c *gin.Context) {
	counterpartID, err := strconv.Atoi(c.Param("counterpart_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid counterpart id"})
		return
	}
	userID := c.GetInt("userID")

	if err := h.typing.Stop(c.Request.Context(), userID, counterpartID); err != nil {
		respondError(c, apperrors.Transient(err), "failed to stop typing")
		return
	}
	observability.IncTypingSignal("stop")

	if h.hub != nil {
		h.hub.Broadcast(ws.ThreadTopic(userID, counterpartID), models.ThreadEvent{
			Type:      models.EventTypingStopped,
			ThreadKey: ws.ThreadTopic(userID, counterpartID),
			UserID:    userID,
		})
	}
	c.Status(http.StatusNoContent)
}
