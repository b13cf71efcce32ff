package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"messaging-service/internal/models"
	"messaging-service/internal/notify"
)

type NotifierMock struct {
	mock.Mock
}

func (m *NotifierMock) MessageReceived(ctx context.Context, msg models.Message, senderName string) {
	m.Called(ctx, msg, senderName)
}

var _ notify.Notifier = (*NotifierMock)(nil)
