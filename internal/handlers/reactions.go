package handlers

import (
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"messaging-service/internal/apperrors"
	"messaging-service/internal/conversations"
	"messaging-service/internal/models"
	"messaging-service/internal/observability"
	"messaging-service/internal/repositories"
	"messaging-service/internal/ws"
)

// Covers multi-codepoint emoji (skin tones, ZWJ families).
const maxEmojiBytes = 64

// ReactionHandler manages the per-message reaction ledger.
type ReactionHandler struct {
	reactionRepo repositories.ReactionRepository
	messageRepo  repositories.MessageRepository
	hub          *ws.Hub
}

// NewReactionHandler builds a ReactionHandler.
func NewReactionHandler(reactionRepo repositories.ReactionRepository, messageRepo repositories.MessageRepository, hub *ws.Hub) *ReactionHandler {
	return &ReactionHandler{reactionRepo: reactionRepo, messageRepo: messageRepo, hub: hub}
}

func validateEmoji(emoji string) error {
	if emoji == "" {
		return apperrors.Validation("emoji is empty")
	}
	if len(emoji) > maxEmojiBytes || !utf8.ValidString(emoji) {
		return apperrors.Validation("invalid emoji")
	}
	return nil
}

// ToggleReaction adds the (message, caller, emoji) triple if absent, removes
// it if present, and returns the recomputed grouping. Recomputing instead of
// patching keeps every observer convergent after missed events.
func (h *ReactionHandler) ToggleReaction(c *gin.Context) {
	messageID, err := strconv.Atoi(c.Param("message_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}
	userID := c.GetInt("userID")

	var req struct {
		Emoji string `json:"emoji"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validateEmoji(req.Emoji); err != nil {
		respondError(c, err, "invalid emoji")
		return
	}

	msg, err := h.messageRepo.GetMessage(c.Request.Context(), messageID)
	if err != nil {
		respondError(c, err, "message not found")
		return
	}
	if msg.Deleted {
		respondError(c, apperrors.NotFound("message"), "message not found")
		return
	}
	if msg.SenderID != userID && msg.ReceiverID != userID {
		respondError(c, apperrors.Permission("only thread participants may react"), "not allowed")
		return
	}

	reacted, err := h.reactionRepo.Toggle(c.Request.Context(), messageID, userID, req.Emoji)
	if err != nil {
		respondError(c, err, "failed to toggle reaction")
		return
	}
	if reacted {
		observability.IncReactionToggle("added")
	} else {
		observability.IncReactionToggle("removed")
	}

	reactions, err := h.reactionRepo.ListForMessage(c.Request.Context(), messageID)
	if err != nil {
		respondError(c, err, "failed to load reactions")
		return
	}
	groups := conversations.GroupReactions(userID, reactions)

	if h.hub != nil {
		h.hub.Broadcast(ws.ThreadTopic(msg.SenderID, msg.ReceiverID), models.ThreadEvent{
			Type:      models.EventReactionChanged,
			ThreadKey: ws.ThreadTopic(msg.SenderID, msg.ReceiverID),
			MessageID: messageID,
		})
	}

	c.JSON(http.StatusOK, gin.H{"reacted": reacted, "reactions": groups})
}
