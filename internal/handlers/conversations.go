package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"messaging-service/internal/conversations"
	"messaging-service/internal/models"
	"messaging-service/internal/presence"
	"messaging-service/internal/repositories"
)

// ConversationHandler serves the derived per-viewer conversation list.
type ConversationHandler struct {
	messageRepo repositories.MessageRepository
	profileRepo repositories.ProfileRepository
	typing      presence.Tracker
}

// NewConversationHandler builds a ConversationHandler.
func NewConversationHandler(messageRepo repositories.MessageRepository, profileRepo repositories.ProfileRepository, typing presence.Tracker) *ConversationHandler {
	return &ConversationHandler{messageRepo: messageRepo, profileRepo: profileRepo, typing: typing}
}

// ListConversations recomputes the caller's conversation summaries from the
// message log. A viewer with no messages gets an empty list.
func (h *ConversationHandler) ListConversations(c *gin.Context) {
	viewerID := c.GetInt("userID")

	msgs, err := retryRead(c.Request.Context(), func() ([]models.Message, error) {
		return h.messageRepo.ListForUser(c.Request.Context(), viewerID)
	})
	if err != nil {
		respondError(c, err, "failed to load conversations")
		return
	}

	summaries := conversations.Aggregate(viewerID, msgs)

	counterpartIDs := make([]int, 0, len(summaries))
	for _, s := range summaries {
		counterpartIDs = append(counterpartIDs, s.CounterpartID)
	}
	profiles, err := h.profileRepo.BulkProfiles(c.Request.Context(), counterpartIDs)
	if err != nil {
		respondError(c, err, "failed to load profiles")
		return
	}

	for i := range summaries {
		summaries[i].CounterpartName = profiles[summaries[i].CounterpartID].Name()
		if h.typing != nil {
			typing, typErr := h.typing.Typing(c.Request.Context(), summaries[i].CounterpartID, viewerID)
			if typErr != nil {
				log.Printf("typing lookup for %d: %v", summaries[i].CounterpartID, typErr)
				continue
			}
			summaries[i].Typing = typing
		}
	}

	c.JSON(http.StatusOK, gin.H{"conversations": summaries})
}
