package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"messaging-service/internal/models"
	"messaging-service/internal/repositories"
)

// NotificationHandler serves the caller's notification feed.
type NotificationHandler struct {
	notificationRepo repositories.NotificationRepository
}

// NewNotificationHandler builds a NotificationHandler.
func NewNotificationHandler(notificationRepo repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notificationRepo: notificationRepo}
}

// ListNotifications returns the caller's notifications, newest first.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID := c.GetInt("userID")

	list, err := retryRead(c.Request.Context(), func() ([]models.Notification, error) {
		return h.notificationRepo.ListForUser(c.Request.Context(), userID)
	})
	if err != nil {
		respondError(c, err, "failed to load notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": list})
}

// MarkNotificationRead flips the read flag on one of the caller's
// notifications.
func (h *NotificationHandler) MarkNotificationRead(c *gin.Context) {
	notificationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}
	userID := c.GetInt("userID")

	if err := h.notificationRepo.MarkRead(c.Request.Context(), notificationID, userID); err != nil {
		respondError(c, err, "failed to mark notification read")
		return
	}
	c.Status(http.StatusNoContent)
}
