package models

import "time"

// Report review statuses.
const (
	ReportPending  = "pending"
	ReportApproved = "approved"
	ReportRejected = "rejected"
)

// Report references a message and/or a user and moves through a
// pending -> approved|rejected review workflow.
type Report struct {
	ID           int        `db:"id" json:"id"`
	ReporterID   int        `db:"reporter_id" json:"reporter_id"`
	MessageID    *int       `db:"message_id" json:"message_id,omitempty"`
	TargetUserID *int       `db:"target_user_id" json:"target_user_id,omitempty"`
	Reason       string     `db:"reason" json:"reason"`
	Status       string     `db:"status" json:"status"`
	ReviewerID   *int       `db:"reviewer_id" json:"reviewer_id,omitempty"`
	ReviewedAt   *time.Time `db:"reviewed_at" json:"reviewed_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// Block is a directed edge: blocker refuses message traffic with blocked.
// Its presence rejects new sends in either direction between the pair.
type Block struct {
	BlockerID int       `db:"blocker_id" json:"blocker_id"`
	BlockedID int       `db:"blocked_id" json:"blocked_id"`
	Reason    string    `db:"reason" json:"reason,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
