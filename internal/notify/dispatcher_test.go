package notify_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"messaging-service/internal/mocks"
	"messaging-service/internal/models"
	"messaging-service/internal/notify"
	"messaging-service/internal/observability"
)

func TestMessageReceivedStoresAndPublishes(t *testing.T) {
	notificationRepo := new(mocks.NotificationRepositoryMock)
	publisher := new(mocks.PublisherMock)
	observability.SetPublisher(publisher)
	defer observability.SetPublisher(nil)

	dispatcher := notify.NewDispatcher(notificationRepo, nil, "messaging-service-test")

	var stored models.Notification
	notificationRepo.On("CreateNotification", mock.Anything, mock.MatchedBy(func(n models.Notification) bool {
		stored = n
		return n.RecipientID == 2 && n.Type == "new_message"
	})).Return(models.Notification{ID: 9, RecipientID: 2, Type: "new_message"}, nil).Once()
	publisher.On("PublishJSON", mock.Anything, "messaging.notifications", mock.Anything, mock.Anything).Return(nil).Once()

	msg := models.Message{ID: 4, SenderID: 1, ReceiverID: 2, Content: "lunch?"}
	dispatcher.MessageReceived(context.Background(), msg, "alice")

	assert.Equal(t, "New message from alice", stored.Title)
	assert.Equal(t, "lunch?", stored.Body)
	assert.Equal(t, "/messages/1", stored.Link)
	notificationRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestMessageReceivedPublishFailureIsSwallowed(t *testing.T) {
	notificationRepo := new(mocks.NotificationRepositoryMock)
	publisher := new(mocks.PublisherMock)
	observability.SetPublisher(publisher)
	defer observability.SetPublisher(nil)

	dispatcher := notify.NewDispatcher(notificationRepo, nil, "messaging-service-test")

	notificationRepo.On("CreateNotification", mock.Anything, mock.Anything).
		Return(models.Notification{ID: 9, RecipientID: 2}, nil).Once()
	publisher.On("PublishJSON", mock.Anything, "messaging.notifications", mock.Anything, mock.Anything).
		Return(assert.AnError).Once()

	// Must not panic or surface the error.
	dispatcher.MessageReceived(context.Background(), models.Message{ID: 4, SenderID: 1, ReceiverID: 2}, "alice")
	publisher.AssertExpectations(t)
}
