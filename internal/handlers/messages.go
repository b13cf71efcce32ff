package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"messaging-service/internal/apperrors"
	"messaging-service/internal/conversations"
	"messaging-service/internal/models"
	"messaging-service/internal/notify"
	"messaging-service/internal/presence"
	"messaging-service/internal/repositories"
	"messaging-service/internal/ws"
)

const maxContentLength = 5000

// MessageHandler manages the direct-message log endpoints.
type MessageHandler struct {
	messageRepo    repositories.MessageRepository
	reactionRepo   repositories.ReactionRepository
	profileRepo    repositories.ProfileRepository
	moderationRepo repositories.ModerationRepository
	typing         presence.Tracker
	notifier       notify.Notifier
	hub            *ws.Hub
}

// NewMessageHandler builds a MessageHandler.
func NewMessageHandler(
	messageRepo repositories.MessageRepository,
	reactionRepo repositories.ReactionRepository,
	profileRepo repositories.ProfileRepository,
	moderationRepo repositories.ModerationRepository,
	typing presence.Tracker,
	notifier notify.Notifier,
	hub *ws.Hub,
) *MessageHandler {
	return &MessageHandler{
		messageRepo:    messageRepo,
		reactionRepo:   reactionRepo,
		profileRepo:    profileRepo,
		moderationRepo: moderationRepo,
		typing:         typing,
		notifier:       notifier,
		hub:            hub,
	}
}

// validateContent trims and bounds message content.
func validateContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", apperrors.Validation("message content is empty")
	}
	if len([]rune(content)) > maxContentLength {
		return "", apperrors.Validation("message content exceeds %d characters", maxContentLength)
	}
	return content, nil
}

// SendMessage appends a message to the log. The message is durably stored
// before any notification side effect runs; a failed notification never
// rolls the message back.
func (h *MessageHandler) SendMessage(c *gin.Context) {
	senderID := c.GetInt("userID")

	var req struct {
		ReceiverID int    `json:"receiver_id" binding:"required"`
		Content    string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	content, err := validateContent(req.Content)
	if err != nil {
		respondError(c, err, "invalid message")
		return
	}
	if req.ReceiverID == senderID {
		respondError(c, apperrors.Validation("cannot message yourself"), "invalid message")
		return
	}

	if _, err := h.profileRepo.GetProfile(c.Request.Context(), req.ReceiverID); err != nil {
		respondError(c, err, "failed to resolve receiver")
		return
	}

	blocked, err := h.moderationRepo.BlockExistsBetween(c.Request.Context(), senderID, req.ReceiverID)
	if err != nil {
		respondError(c, err, "failed to check blocks")
		return
	}
	if blocked {
		respondError(c, apperrors.Permission("messaging is blocked between these users"), "blocked")
		return
	}

	msg, err := h.messageRepo.CreateMessage(c.Request.Context(), senderID, req.ReceiverID, content)
	if err != nil {
		respondError(c, err, "failed to store message")
		return
	}

	// Sending implies the sender stopped typing.
	if h.typing != nil {
		if stopErr := h.typing.Stop(c.Request.Context(), senderID, req.ReceiverID); stopErr != nil {
			log.Printf("stop typing after send: %v", stopErr)
		}
	}

	sender, profErr := h.profileRepo.GetProfile(c.Request.Context(), senderID)
	senderName := ""
	if profErr == nil {
		senderName = sender.Name()
	}
	if h.notifier != nil {
		h.notifier.MessageReceived(c.Request.Context(), msg, senderName)
	}

	if h.hub != nil {
		event := models.ThreadEvent{
			Type:      models.EventMessageNew,
			ThreadKey: ws.ThreadTopic(senderID, req.ReceiverID),
			MessageID: msg.ID,
		}
		h.hub.Broadcast(ws.ThreadTopic(senderID, req.ReceiverID), event)
		h.hub.Broadcast(ws.UserTopic(req.ReceiverID), event)
	}

	c.JSON(http.StatusCreated, msg)
}

// GetThread returns the ordered non-deleted messages between the caller and
// the counterpart, annotated with display names and reaction groups.
func (h *MessageHandler) GetThread(c *gin.Context) {
	counterpartID, err := strconv.Atoi(c.Param("counterpart_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid counterpart id"})
		return
	}
	viewerID := c.GetInt("userID")

	msgs, err := retryRead(c.Request.Context(), func() ([]models.Message, error) {
		return h.messageRepo.ListThread(c.Request.Context(), viewerID, counterpartID)
	})
	if err != nil {
		respondError(c, err, "failed to load thread")
		return
	}

	profiles, err := h.profileRepo.BulkProfiles(c.Request.Context(), []int{viewerID, counterpartID})
	if err != nil {
		respondError(c, err, "failed to load profiles")
		return
	}

	messageIDs := make([]int, 0, len(msgs))
	for _, m := range msgs {
		messageIDs = append(messageIDs, m.ID)
	}
	reactions, err := h.reactionRepo.ListForMessages(c.Request.Context(), messageIDs)
	if err != nil {
		respondError(c, err, "failed to load reactions")
		return
	}
	groups := conversations.GroupReactionsByMessage(viewerID, reactions)

	resp := make([]models.ThreadMessage, 0, len(msgs))
	for _, m := range msgs {
		resp = append(resp, models.ThreadMessage{
			Message:        m,
			SenderName:     profiles[m.SenderID].Name(),
			ReceiverName:   profiles[m.ReceiverID].Name(),
			ReactionGroups: groups[m.ID],
		})
	}

	c.JSON(http.StatusOK, gin.H{"messages": resp})
}

// MarkThreadRead flips the read flag on all messages addressed to the caller
// from the counterpart. Idempotent.
func (h *MessageHandler) MarkThreadRead(c *gin.Context) {
	counterpartID, err := strconv.Atoi(c.Param("counterpart_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid counterpart id"})
		return
	}
	viewerID := c.GetInt("userID")

	if err := h.messageRepo.MarkThreadRead(c.Request.Context(), viewerID, counterpartID); err != nil {
		respondError(c, err, "failed to mark thread read")
		return
	}

	if h.hub != nil {
		h.hub.Broadcast(ws.ThreadTopic(viewerID, counterpartID), models.ThreadEvent{
			Type:      models.EventThreadRead,
			ThreadKey: ws.ThreadTopic(viewerID, counterpartID),
			UserID:    viewerID,
		})
	}
	c.Status(http.StatusNoContent)
}

// EditMessage replaces the content of a message the caller sent.
func (h *MessageHandler) EditMessage(c *gin.Context) {
	messageID, err := strconv.Atoi(c.Param("message_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}
	userID := c.GetInt("userID")

	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	content, err := validateContent(req.Content)
	if err != nil {
		respondError(c, err, "invalid message")
		return
	}

	msg, err := h.messageRepo.EditMessage(c.Request.Context(), messageID, userID, content)
	if err != nil {
		respondError(c, err, "failed to edit message")
		return
	}

	if h.hub != nil {
		h.hub.Broadcast(ws.ThreadTopic(msg.SenderID, msg.ReceiverID), models.ThreadEvent{
			Type:      models.EventMessageEdited,
			ThreadKey: ws.ThreadTopic(msg.SenderID, msg.ReceiverID),
			MessageID: msg.ID,
		})
	}
	c.JSON(http.StatusOK, msg)
}

// DeleteMessage soft-deletes a message the caller sent. Content is retained
// server-side for moderation review.
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	messageID, err := strconv.Atoi(c.Param("message_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}
	userID := c.GetInt("userID")

	msg, err := h.messageRepo.GetMessage(c.Request.Context(), messageID)
	if err != nil {
		respondError(c, err, "message not found")
		return
	}

	if err := h.messageRepo.SoftDelete(c.Request.Context(), messageID, userID); err != nil {
		respondError(c, err, "failed to delete message")
		return
	}

	if h.hub != nil {
		h.hub.Broadcast(ws.ThreadTopic(msg.SenderID, msg.ReceiverID), models.ThreadEvent{
			Type:      models.EventMessageDeleted,
			ThreadKey: ws.ThreadTopic(msg.SenderID, msg.ReceiverID),
			MessageID: messageID,
		})
	}
	c.Status(http.StatusNoContent)
}
