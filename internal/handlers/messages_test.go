package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"messaging-service/internal/apperrors"
	"messaging-service/internal/mocks"
	"messaging-service/internal/models"
	"messaging-service/internal/notify"
	"messaging-service/internal/ws"
)

func setupMessageRouter(handler *MessageHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", 1)
		c.Next()
	})
	r.POST("/messages", handler.SendMessage)
	r.PATCH("/messages/:message_id", handler.EditMessage)
	r.DELETE("/messages/:message_id", handler.DeleteMessage)
	r.GET("/threads/:counterpart_id", handler.GetThread)
	r.POST("/threads/:counterpart_id/read", handler.MarkThreadRead)
	return r
}

func TestSendMessageSuccess(t *testing.T) {
	messageRepo := new(mocks.MessageRepositoryMock)
	profileRepo := new(mocks.ProfileRepositoryMock)
	moderationRepo := new(mocks.ModerationRepositoryMock)
	typing := new(mocks.TrackerMock)
	notifier := new(mocks.NotifierMock)
	handler := NewMessageHandler(messageRepo, nil, profileRepo, moderationRepo, typing, notifier, ws.NewHub())
	router := setupMessageRouter(handler)

	stored := models.Message{ID: 7, SenderID: 1, ReceiverID: 2, Content: "Hi"}
	profileRepo.On("GetProfile", mock.Anything, 2).Return(models.Profile{ID: 2, Username: "bob"}, nil).Once()
	moderationRepo.On("BlockExistsBetween", mock.Anything, 1, 2).Return(false, nil).Once()
	messageRepo.On("CreateMessage", mock.Anything, 1, 2, "Hi").Return(stored, nil).Once()
	typing.On("Stop", mock.Anything, 1, 2).Return(nil).Once()
	profileRepo.On("GetProfile", mock.Anything, 1).Return(models.Profile{ID: 1, Username: "alice"}, nil).Once()
	notifier.On("MessageReceived", mock.Anything, stored, "alice").Once()

	req := httptest.NewRequest(http.MethodPost, "/messages", bytes.NewBufferString(`{"receiver_id":2,"content":"Hi"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	messageRepo.AssertExpectations(t)
	moderationRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
	typing.AssertExpectations(t)
}

func TestSendMessageEmptyContent(t *testing.T) {
	handler := NewMessageHandler(new(mocks.MessageRepositoryMock), nil, new(mocks.ProfileRepositoryMock), new(mocks.ModerationRepositoryMock), nil, nil, nil)
	router := setupMessageRouter(handler)

	req := httptest.NewRequest(http.MethodPost, "/messages", bytes.NewBufferString(`{"receiver_id":2,"content":"   "}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendMessageTooLong(t *testing.T) {
	handler := NewMessageHandler(new(mocks.MessageRepositoryMock), nil, new(mocks.ProfileRepositoryMock), new(mocks.ModerationRepositoryMock), nil, nil, nil)
	router := setupMessageRouter(handler)

	body, err := json.Marshal(gin.H{"receiver_id": 2, "content": strings.Repeat("x", 5001)})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/messages", bytes.NewBuffer(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendMessageToSelf(t *testing.T) {
	handler := NewMessageHandler(new(mocks.MessageRepositoryMock), nil, new(mocks.ProfileRepositoryMock), new(mocks.ModerationRepositoryMock), nil, nil, nil)
	router := setupMessageRouter(handler)

	req := httptest.NewRequest(http.MethodPost, "/messages", bytes.NewBufferString(`{"receiver_id":1,"content":"hello me"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendMessageBlockedPair(t *testing.T) {
	messageRepo := new(mocks.MessageRepositoryMock)
	profileRepo := new(mocks.ProfileRepositoryMock)
	moderationRepo := new(mocks.ModerationRepositoryMock)
	handler := NewMessageHandler(messageRepo, nil, profileRepo, moderationRepo, nil, nil, nil)
	router := setupMessageRouter(handler)

	profileRepo.On("GetProfile", mock.Anything, 2).Return(models.Profile{ID: 2, Username: "bob"}, nil).Once()
	moderationRepo.On("BlockExistsBetween", mock.Anything, 1, 2).Return(true, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/messages", bytes.NewBufferString(`{"receiver_id":2,"content":"Hi"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	messageRepo.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	moderationRepo.AssertExpectations(t)
}

func TestSendMessageNotificationFailureDoesNotFailSend(t *testing.T) {
	messageRepo := new(mocks.MessageRepositoryMock)
	profileRepo := new(mocks.ProfileRepositoryMock)
	moderationRepo := new(mocks.ModerationRepositoryMock)
	typing := new(mocks.TrackerMock)
	notificationRepo := new(mocks.NotificationRepositoryMock)
	dispatcher := notify.NewDispatcher(notificationRepo, nil, "messaging-service-test")
	handler := NewMessageHandler(messageRepo, nil, profileRepo, moderationRepo, typing, dispatcher, nil)
	router := setupMessageRouter(handler)

	stored := models.Message{ID: 7, SenderID: 1, ReceiverID: 2, Content: "Hi"}
	profileRepo.On("GetProfile", mock.Anything, 2).Return(models.Profile{ID: 2, Username: "bob"}, nil).Once()
	moderationRepo.On("BlockExistsBetween", mock.Anything, 1, 2).Return(false, nil).Once()
	messageRepo.On("CreateMessage", mock.Anything, 1, 2, "Hi").Return(stored, nil).Once()
	typing.On("Stop", mock.Anything, 1, 2).Return(nil).Once()
	profileRepo.On("GetProfile", mock.Anything, 1).Return(models.Profile{ID: 1, Username: "alice"}, nil).Once()
	notificationRepo.On("CreateNotification", mock.Anything, mock.Anything).Return(models.Notification{}, assert.AnError).Once()

	req := httptest.NewRequest(http.MethodPost, "/messages", bytes.NewBufferString(`{"receiver_id":2,"content":"Hi"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// Dispatch failed but the send is durable and reported as created.
	require.Equal(t, http.StatusCreated, rec.Code)
	notificationRepo.AssertExpectations(t)
}

func TestGetThreadSuccess(t *testing.T) {
	messageRepo := new(mocks.MessageRepositoryMock)
	reactionRepo := new(mocks.ReactionRepositoryMock)
	profileRepo := new(mocks.ProfileRepositoryMock)
	handler := NewMessageHandler(messageRepo, reactionRepo, profileRepo, nil, nil, nil, nil)
	router := setupMessageRouter(handler)

	msgs := []models.Message{{ID: 4, SenderID: 2, ReceiverID: 1, Content: "Hi"}}
	messageRepo.On("ListThread", mock.Anything, 1, 2).Return(msgs, nil).Once()
	profileRepo.On("BulkProfiles", mock.Anything, []int{1, 2}).Return(map[int]models.Profile{
		1: {ID: 1, Username: "alice"},
		2: {ID: 2, Username: "bob"},
	}, nil).Once()
	reactionRepo.On("ListForMessages", mock.Anything, []int{4}).Return([]models.Reaction{
		{MessageID: 4, UserID: 1, Emoji: "👍"},
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/threads/2", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Messages []models.ThreadMessage `json:"messages"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, "bob", resp.Messages[0].SenderName)
	require.Len(t, resp.Messages[0].ReactionGroups, 1)
	assert.True(t, resp.Messages[0].ReactionGroups[0].ViewerReacted)

	messageRepo.AssertExpectations(t)
	reactionRepo.AssertExpectations(t)
	profileRepo.AssertExpectations(t)
}

func TestGetThreadInvalidID(t *testing.T) {
	handler := NewMessageHandler(new(mocks.MessageRepositoryMock), new(mocks.ReactionRepositoryMock), new(mocks.ProfileRepositoryMock), nil, nil, nil, nil)
	router := setupMessageRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/threads/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMarkThreadReadIdempotent(t *testing.T) {
	messageRepo := new(mocks.MessageRepositoryMock)
	handler := NewMessageHandler(messageRepo, nil, nil, nil, nil, nil, ws.NewHub())
	router := setupMessageRouter(handler)

	messageRepo.On("MarkThreadRead", mock.Anything, 1, 2).Return(nil).Twice()

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/threads/2/read", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
	}
	messageRepo.AssertExpectations(t)
}

func TestDeleteMessageNotSender(t *testing.T) {
	messageRepo := new(mocks.MessageRepositoryMock)
	handler := NewMessageHandler(messageRepo, nil, nil, nil, nil, nil, nil)
	router := setupMessageRouter(handler)

	messageRepo.On("GetMessage", mock.Anything, 9).Return(models.Message{ID: 9, SenderID: 2, ReceiverID: 1}, nil).Once()
	messageRepo.On("SoftDelete", mock.Anything, 9, 1).Return(apperrors.Permission("only the sender may delete a message")).Once()

	req := httptest.NewRequest(http.MethodDelete, "/messages/9", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	messageRepo.AssertExpectations(t)
}

func TestDeleteMessageSuccess(t *testing.T) {
	messageRepo := new(mocks.MessageRepositoryMock)
	handler := NewMessageHandler(messageRepo, nil, nil, nil, nil, nil, ws.NewHub())
	router := setupMessageRouter(handler)

	messageRepo.On("GetMessage", mock.Anything, 9).Return(models.Message{ID: 9, SenderID: 1, ReceiverID: 2}, nil).Once()
	messageRepo.On("SoftDelete", mock.Anything, 9, 1).Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/messages/9", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	messageRepo.AssertExpectations(t)
}

func TestEditMessageNotSender(t *testing.T) {
	messageRepo := new(mocks.MessageRepositoryMock)
	handler := NewMessageHandler(messageRepo, nil, nil, nil, nil, nil, nil)
	router := setupMessageRouter(handler)

	messageRepo.On("EditMessage", mock.Anything, 9, 1, "new text").
		Return(models.Message{}, apperrors.Permission("only the sender may edit a message")).Once()

	req := httptest.NewRequest(http.MethodPatch, "/messages/9", bytes.NewBufferString(`{"content":"new text"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	messageRepo.AssertExpectations(t)
}
