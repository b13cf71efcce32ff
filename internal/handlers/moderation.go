package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"messaging-service/internal/apperrors"
	"messaging-service/internal/models"
	"messaging-service/internal/repositories"
)

// ModerationHandler manages reports and blocks.
type ModerationHandler struct {
	moderationRepo repositories.ModerationRepository
	messageRepo    repositories.MessageRepository
}

// NewModerationHandler builds a ModerationHandler.
func NewModerationHandler(moderationRepo repositories.ModerationRepository, messageRepo repositories.MessageRepository) *ModerationHandler {
	return &ModerationHandler{moderationRepo: moderationRepo, messageRepo: messageRepo}
}

// CreateReport files a pending report against a message and/or a user. The
// message log is untouched; a soft-deleted message can still be referenced.
func (h *ModerationHandler) CreateReport(c *gin.Context) {
	reporterID := c.GetInt("userID")

	var req struct {
		MessageID    *int   `json:"message_id"`
		TargetUserID *int   `json:"user_id"`
		Reason       string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		respondError(c, apperrors.Validation("report reason is required"), "invalid report")
		return
	}
	if req.MessageID == nil && req.TargetUserID == nil {
		respondError(c, apperrors.Validation("report needs a message or a user target"), "invalid report")
		return
	}

	if req.MessageID != nil {
		// Existence only: deleted messages remain reportable by id.
		if _, err := h.messageRepo.GetMessage(c.Request.Context(), *req.MessageID); err != nil {
			respondError(c, err, "reported message not found")
			return
		}
	}

	report, err := h.moderationRepo.CreateReport(c.Request.Context(), reporterID, req.MessageID, req.TargetUserID, reason)
	if err != nil {
		respondError(c, err, "failed to create report")
		return
	}

	c.JSON(http.StatusCreated, report)
}

// ReviewReport transitions a pending report to approved or rejected.
// Approval does not cascade into message deletion or user suspension; those
// are separate administrative actions.
func (h *ModerationHandler) ReviewReport(c *gin.Context) {
	reportID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
		return
	}
	reviewerID := c.GetInt("userID")

	var req struct {
		Decision string `json:"decision"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Decision != models.ReportApproved && req.Decision != models.ReportRejected {
		respondError(c, apperrors.Validation("decision must be approved or rejected"), "invalid decision")
		return
	}

	report, err := h.moderationRepo.GetReport(c.Request.Context(), reportID)
	if err != nil {
		respondError(c, err, "report not found")
		return
	}
	if report.ReporterID == reviewerID {
		respondError(c, apperrors.Permission("cannot review your own report"), "not allowed")
		return
	}

	reviewed, err := h.moderationRepo.ReviewReport(c.Request.Context(), reportID, reviewerID, req.Decision)
	if err != nil {
		respondError(c, err, "failed to review report")
		return
	}

	c.JSON(http.StatusOK, reviewed)
}

// CreateBlock records a directed block edge. New sends between the pair are
// rejected in either direction from this point on.
func (h *ModerationHandler) CreateBlock(c *gin.Context) {
	blockerID := c.GetInt("userID")

	var req struct {
		BlockedID int    `json:"blocked_id" binding:"required"`
		Reason    string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.BlockedID == blockerID {
		respondError(c, apperrors.Validation("cannot block yourself"), "invalid block")
		return
	}

	if err := h.moderationRepo.CreateBlock(c.Request.Context(), blockerID, req.BlockedID, strings.TrimSpace(req.Reason)); err != nil {
		respondError(c, err, "failed to create block")
		return
	}

	c.Status(http.StatusNoContent)
}
