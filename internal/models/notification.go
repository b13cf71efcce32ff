package models

import "time"

// Notification is a best-effort side effect of a message send. It has an
// independent lifecycle: deleting the triggering message does not retract it.
type Notification struct {
	ID          int       `db:"id" json:"id"`
	RecipientID int       `db:"recipient_id" json:"recipient_id"`
	Type        string    `db:"type" json:"type"`
	Title       string    `db:"title" json:"title"`
	Body        string    `db:"body" json:"body"`
	Link        string    `db:"link" json:"link"`
	Read        bool      `db:"read" json:"read"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
