package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"messaging-service/internal/models"
	"messaging-service/internal/repositories"
)

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) CreateMessage(ctx context.Context, senderID, receiverID int, content string) (models.Message, error) {
	args := m.Called(ctx, senderID, receiverID, content)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) ListThread(ctx context.Context, userA, userB int) ([]models.Message, error) {
	args := m.Called(ctx, userA, userB)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Error(1)
}

func (m *MessageRepositoryMock) ListForUser(ctx context.Context, userID int) ([]models.Message, error) {
	args := m.Called(ctx, userID)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Error(1)
}

func (m *MessageRepositoryMock) GetMessage(ctx context.Context, messageID int) (models.Message, error) {
	args := m.Called(ctx, messageID)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) MarkThreadRead(ctx context.Context, viewerID, counterpartID int) error {
	args := m.Called(ctx, viewerID, counterpartID)
	return args.Error(0)
}

func (m *MessageRepositoryMock) SoftDelete(ctx context.Context, messageID, requestorID int) error {
	args := m.Called(ctx, messageID, requestorID)
	return args.Error(0)
}

func (m *MessageRepositoryMock) EditMessage(ctx context.Context, messageID, requestorID int, content string) (models.Message, error) {
	args := m.Called(ctx, messageID, requestorID, content)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

type ReactionRepositoryMock struct {
	mock.Mock
}

func (m *ReactionRepositoryMock) Toggle(ctx context.Context, messageID, userID int, emoji string) (bool, error) {
	args := m.Called(ctx, messageID, userID, emoji)
	return args.Bool(0), args.Error(1)
}

func (m *ReactionRepositoryMock) ListForMessage(ctx context.Context, messageID int) ([]models.Reaction, error) {
	args := m.Called(ctx, messageID)
	var reactions []models.Reaction
	if val := args.Get(0); val != nil {
		reactions = val.([]models.Reaction)
	}
	return reactions, args.Error(1)
}

func (m *ReactionRepositoryMock) ListForMessages(ctx context.Context, messageIDs []int) ([]models.Reaction, error) {
	args := m.Called(ctx, messageIDs)
	var reactions []models.Reaction
	if val := args.Get(0); val != nil {
		reactions = val.([]models.Reaction)
	}
	return reactions, args.Error(1)
}

type NotificationRepositoryMock struct {
	mock.Mock
}

func (m *NotificationRepositoryMock) CreateNotification(ctx context.Context, n models.Notification) (models.Notification, error) {
	args := m.Called(ctx, n)
	var stored models.Notification
	if val := args.Get(0); val != nil {
		stored = val.(models.Notification)
	}
	return stored, args.Error(1)
}

func (m *NotificationRepositoryMock) ListForUser(ctx context.Context, userID int) ([]models.Notification, error) {
	args := m.Called(ctx, userID)
	var list []models.Notification
	if val := args.Get(0); val != nil {
		list = val.([]models.Notification)
	}
	return list, args.Error(1)
}

func (m *NotificationRepositoryMock) MarkRead(ctx context.Context, notificationID, userID int) error {
	args := m.Called(ctx, notificationID, userID)
	return args.Error(0)
}

type ModerationRepositoryMock struct {
	mock.Mock
}

func (m *ModerationRepositoryMock) CreateReport(ctx context.Context, reporterID int, messageID, targetUserID *int, reason string) (models.Report, error) {
	args := m.Called(ctx, reporterID, messageID, targetUserID, reason)
	var report models.Report
	if val := args.Get(0); val != nil {
		report = val.(models.Report)
	}
	return report, args.Error(1)
}

func (m *ModerationRepositoryMock) GetReport(ctx context.Context, reportID int) (models.Report, error) {
	args := m.Called(ctx, reportID)
	var report models.Report
	if val := args.Get(0); val != nil {
		report = val.(models.Report)
	}
	return report, args.Error(1)
}

func (m *ModerationRepositoryMock) ReviewReport(ctx context.Context, reportID, reviewerID int, decision string) (models.Report, error) {
	args := m.Called(ctx, reportID, reviewerID, decision)
	var report models.Report
	if val := args.Get(0); val != nil {
		report = val.(models.Report)
	}
	return report, args.Error(1)
}

func (m *ModerationRepositoryMock) CreateBlock(ctx context.Context, blockerID, blockedID int, reason string) error {
	args := m.Called(ctx, blockerID, blockedID, reason)
	return args.Error(0)
}

func (m *ModerationRepositoryMock) BlockExistsBetween(ctx context.Context, userA, userB int) (bool, error) {
	args := m.Called(ctx, userA, userB)
	return args.Bool(0), args.Error(1)
}

type ProfileRepositoryMock struct {
	mock.Mock
}

func (m *ProfileRepositoryMock) GetProfile(ctx context.Context, userID int) (models.Profile, error) {
	args := m.Called(ctx, userID)
	var p models.Profile
	if val := args.Get(0); val != nil {
		p = val.(models.Profile)
	}
	return p, args.Error(1)
}

func (m *ProfileRepositoryMock) BulkProfiles(ctx context.Context, userIDs []int) (map[int]models.Profile, error) {
	args := m.Called(ctx, userIDs)
	var profiles map[int]models.Profile
	if val := args.Get(0); val != nil {
		profiles = val.(map[int]models.Profile)
	}
	return profiles, args.Error(1)
}

var _ repositories.MessageRepository = (*MessageRepositoryMock)(nil)
var _ repositories.ReactionRepository = (*ReactionRepositoryMock)(nil)
var _ repositories.NotificationRepository = (*NotificationRepositoryMock)(nil)
var _ repositories.ModerationRepository = (*ModerationRepositoryMock)(nil)
var _ repositories.ProfileRepository = (*ProfileRepositoryMock)(nil)
