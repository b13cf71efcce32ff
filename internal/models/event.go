package models

// Event types broadcast over the realtime bridge. Payloads are deliberately
// minimal: subscribers refetch the affected aggregate instead of trusting
// the event as the new state, which tolerates missed, duplicated and
// reordered deliveries.
const (
	EventMessageNew      = "message_new"
	EventMessageEdited   = "message_edited"
	EventMessageDeleted  = "message_deleted"
	EventThreadRead      = "thread_read"
	EventReactionChanged = "reaction_changed"
	EventTypingStarted   = "typing_started"
	EventTypingStopped   = "typing_stopped"
	EventNotification    = "notification"
)

// ThreadEvent is broadcast through websockets on thread and user topics.
type ThreadEvent struct {
	Type      string `json:"type"`
	ThreadKey string `json:"thread_key,omitempty"`
	MessageID int    `json:"message_id,omitempty"`
	UserID    int    `json:"user_id,omitempty"`
}
