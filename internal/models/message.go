package models

import "time"

// Message is one entry in the append-only direct-message log. Deleted
// messages are retained server-side for moderation review and excluded from
// every read path.
type Message struct {
	ID         int        `db:"id" json:"id"`
	SenderID   int        `db:"sender_id" json:"sender_id"`
	ReceiverID int        `db:"receiver_id" json:"receiver_id"`
	Content    string     `db:"content" json:"content"`
	Read       bool       `db:"read" json:"read"`
	Edited     bool       `db:"edited" json:"edited"`
	EditedAt   *time.Time `db:"edited_at" json:"edited_at,omitempty"`
	Deleted    bool       `db:"deleted" json:"-"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

// ThreadMessage is a message annotated for display: sender/receiver names
// plus the viewer's reaction grouping.
type ThreadMessage struct {
	Message
	SenderName     string          `json:"sender_name,omitempty"`
	ReceiverName   string          `json:"receiver_name,omitempty"`
	ReactionGroups []ReactionGroup `json:"reactions,omitempty"`
}
