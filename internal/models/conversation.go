package models

import "time"

// ConversationSummary is the derived per-viewer view of one thread. It is
// recomputed from the message log on demand, never stored.
type ConversationSummary struct {
	CounterpartID   int       `json:"counterpart_id"`
	CounterpartName string    `json:"counterpart_name,omitempty"`
	Typing          bool      `json:"typing"`
	LastMessage     string    `json:"last_message"`
	LastMessageAt   time.Time `json:"last_message_at"`
	UnreadCount     int       `json:"unread_count"`
}
