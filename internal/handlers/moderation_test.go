package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"messaging-service/internal/mocks"
	"messaging-service/internal/models"
)

func setupModerationRouter(handler *ModerationHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", 1)
		c.Next()
	})
	r.POST("/reports", handler.CreateReport)
	r.POST("/reports/:id/review", handler.ReviewReport)
	r.POST("/blocks", handler.CreateBlock)
	return r
}

func TestCreateReportForMessage(t *testing.T) {
	moderationRepo := new(mocks.ModerationRepositoryMock)
	messageRepo := new(mocks.MessageRepositoryMock)
	handler := NewModerationHandler(moderationRepo, messageRepo)
	router := setupModerationRouter(handler)

	messageRepo.On("GetMessage", mock.Anything, 4).Return(models.Message{ID: 4, SenderID: 2, ReceiverID: 1}, nil).Once()
	moderationRepo.On("CreateReport", mock.Anything, 1, mock.Anything, mock.Anything, "spam").
		Return(models.Report{ID: 10, ReporterID: 1, Status: models.ReportPending}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/reports", bytes.NewBufferString(`{"message_id":4,"reason":"spam"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	moderationRepo.AssertExpectations(t)
	messageRepo.AssertExpectations(t)
}

func TestCreateReportMissingReason(t *testing.T) {
	handler := NewModerationHandler(new(mocks.ModerationRepositoryMock), new(mocks.MessageRepositoryMock))
	router := setupModerationRouter(handler)

	req := httptest.NewRequest(http.MethodPost, "/reports", bytes.NewBufferString(`{"message_id":4,"reason":"  "}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateReportNoTarget(t *testing.T) {
	handler := NewModerationHandler(new(mocks.ModerationRepositoryMock), new(mocks.MessageRepositoryMock))
	router := setupModerationRouter(handler)

	req := httptest.NewRequest(http.MethodPost, "/reports", bytes.NewBufferString(`{"reason":"spam"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReviewReportSuccess(t *testing.T) {
	moderationRepo := new(mocks.ModerationRepositoryMock)
	handler := NewModerationHandler(moderationRepo, new(mocks.MessageRepositoryMock))
	router := setupModerationRouter(handler)

	moderationRepo.On("GetReport", mock.Anything, 10).
		Return(models.Report{ID: 10, ReporterID: 2, Status: models.ReportPending}, nil).Once()
	moderationRepo.On("ReviewReport", mock.Anything, 10, 1, models.ReportApproved).
		Return(models.Report{ID: 10, ReporterID: 2, Status: models.ReportApproved}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/reports/10/review", bytes.NewBufferString(`{"decision":"approved"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	moderationRepo.AssertExpectations(t)
}

func TestReviewOwnReportForbidden(t *testing.T) {
	moderationRepo := new(mocks.ModerationRepositoryMock)
	handler := NewModerationHandler(moderationRepo, new(mocks.MessageRepositoryMock))
	router := setupModerationRouter(handler)

	moderationRepo.On("GetReport", mock.Anything, 10).
		Return(models.Report{ID: 10, ReporterID: 1, Status: models.ReportPending}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/reports/10/review", bytes.NewBufferString(`{"decision":"rejected"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	moderationRepo.AssertNotCalled(t, "ReviewReport", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewReportInvalidDecision(t *testing.T) {
	handler := NewModerationHandler(new(mocks.ModerationRepositoryMock), new(mocks.MessageRepositoryMock))
	router := setupModerationRouter(handler)

	req := httptest.NewRequest(http.MethodPost, "/reports/10/review", bytes.NewBufferString(`{"decision":"maybe"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBlockSuccess(t *testing.T) {
	moderationRepo := new(mocks.ModerationRepositoryMock)
	handler := NewModerationHandler(moderationRepo, new(mocks.MessageRepositoryMock))
	router := setupModerationRouter(handler)

	moderationRepo.On("CreateBlock", mock.Anything, 1, 2, "harassment").Return(nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/blocks", bytes.NewBufferString(`{"blocked_id":2,"reason":"harassment"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	moderationRepo.AssertExpectations(t)
}

func TestCreateBlockSelf(t *testing.T) {
	handler := NewModerationHandler(new(mocks.ModerationRepositoryMock), new(mocks.MessageRepositoryMock))
	router := setupModerationRouter(handler)

	req := httptest.NewRequest(http.MethodPost, "/blocks", bytes.NewBufferString(`{"blocked_id":1}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
