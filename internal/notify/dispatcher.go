// Package notify implements the best-effort notification fan-out that rides
// on a message send. Dispatch failures are logged and counted, never
// propagated: a lost notification must not roll back a stored message.
package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"messaging-service/internal/apperrors"
	"messaging-service/internal/models"
	"messaging-service/internal/observability"
	"messaging-service/internal/repositories"
	"messaging-service/internal/ws"
)

const (
	notificationTypeNewMessage = "new_message"
	previewLimit               = 80
	routingKeyNotifications    = "messaging.notifications"
)

// Notifier is the dispatch contract consumed by handlers.
type Notifier interface {
	MessageReceived(ctx context.Context, msg models.Message, senderName string)
}

// Dispatcher writes notification rows, publishes bus events and pokes the
// recipient's realtime topic.
type Dispatcher struct {
	notifications repositories.NotificationRepository
	hub           *ws.Hub
	service       string
}

// NewDispatcher constructs a Dispatcher.
func NewDispatcher(notifications repositories.NotificationRepository, hub *ws.Hub, service string) *Dispatcher {
	return &Dispatcher{notifications: notifications, hub: hub, service: service}
}

// MessageReceived records a "new message" notification for the receiver.
// The triggering message is already durable when this runs; every failure
// path here only logs.
func (d *Dispatcher) MessageReceived(ctx context.Context, msg models.Message, senderName string) {
	title := "New message"
	if senderName != "" {
		title = fmt.Sprintf("New message from %s", senderName)
	}

	notification := models.Notification{
		RecipientID: msg.ReceiverID,
		Type:        notificationTypeNewMessage,
		Title:       title,
		Body:        preview(msg.Content),
		Link:        fmt.Sprintf("/messages/%d", msg.SenderID),
	}

	stored, err := d.notifications.CreateNotification(ctx, notification)
	if err != nil {
		dispatchErr := &apperrors.NotificationDispatchError{Err: err}
		log.Printf("notification dispatch failed for message %d: %v", msg.ID, dispatchErr)
		observability.IncNotification("failed")
		return
	}
	observability.IncNotification("created")

	envelope := observability.EventEnvelope{
		SchemaVersion: 1,
		EventType:     "notifications",
		EventName:     notificationTypeNewMessage,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339Nano),
		Service:       d.service,
		Payload: map[string]interface{}{
			"notification_id": stored.ID,
			"recipient_id":    stored.RecipientID,
			"message_id":      msg.ID,
			"sender_id":       msg.SenderID,
		},
	}
	headers := observability.BuildHeaders(uuid.NewString(), "")
	if err := observability.PublishEvent(ctx, routingKeyNotifications, envelope, headers); err != nil {
		log.Printf("notification event publish failed: %v", err)
	}

	if d.hub != nil {
		d.hub.Broadcast(ws.UserTopic(msg.ReceiverID), models.ThreadEvent{
			Type:   models.EventNotification,
			UserID: msg.ReceiverID,
		})
	}
}

// preview trims the message body for notification display.
func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewLimit {
		return content
	}
	return string(runes[:previewLimit-1]) + "…"
}
