package ws

import (
	"context"
	"time"

	"messaging-service/internal/observability"
)

const routingKeyWSEvents = "ws_events.threads"

func publishWSEvent(ctx context.Context, event, topic string, info ConnInfo, reason string) {
	payload := map[string]interface{}{
		"ws": map[string]interface{}{
			"kind":        "thread",
			"topic":       topic,
			"event":       event,
			"conn_id":     info.ConnID,
			"duration_ms": time.Since(info.ConnectedAt).Milliseconds(),
			"reason":      reason,
		},
		"identity": map[string]interface{}{
			"user_id":   info.UserID,
			"device_id": info.DeviceID,
			"ip":        info.IP,
		},
	}

	headers := observability.BuildHeaders(info.RequestID, info.TraceID)
	_ = observability.PublishEvent(ctx, routingKeyWSEvents, observability.EventEnvelope{
		SchemaVersion: 1,
		EventType:     "ws_events",
		EventName:     event,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339Nano),
		Service:       "messaging-service",
		Payload:       payload,
	}, headers)
}
