package models

import "time"

// Reaction is one (message, user, emoji) row. The triple is unique: a user
// may react to the same message with the same emoji at most once.
type Reaction struct {
	MessageID int       `db:"message_id" json:"message_id"`
	UserID    int       `db:"user_id" json:"user_id"`
	Emoji     string    `db:"emoji" json:"emoji"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ReactionGroup is the per-emoji display aggregate for one message.
type ReactionGroup struct {
	Emoji         string `json:"emoji"`
	Count         int    `json:"count"`
	UserIDs       []int  `json:"user_ids"`
	ViewerReacted bool   `json:"viewer_reacted"`
}
