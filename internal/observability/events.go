package observability

// EventEnvelope is the bus-facing wrapper for service events.
type EventEnvelope struct {
	SchemaVersion int         `json:"schema_version"`
	EventType     string      `json:"event_type"`
	EventName     string      `json:"event_name"`
	OccurredAt    string      `json:"occurred_at"`
	Service       string      `json:"service"`
	Payload       interface{} `json:"payload"`
}

// BuildHeaders assembles the standard correlation headers.
func BuildHeaders(requestID, traceID string) map[string]string {
	headers := map[string]string{}
	if requestID != "" {
		headers["x-request-id"] = requestID
	}
	if traceID != "" {
		headers["trace_id"] = traceID
	}
	return headers
}
