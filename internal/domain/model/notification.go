package model

import "time"

// NotificationKind labels outbox entries.
type NotificationKind string

const (
	// NotificationPOSubmitted is enqueued once when a client completes the
	// PO confirmation step.
	NotificationPOSubmitted NotificationKind = "PO_CONFIRMATION_SUBMITTED"
	// NotificationOrderReviewed is enqueued when an admin moves the order
	// out of pending review.
	NotificationOrderReviewed NotificationKind = "ORDER_REVIEWED"
)

// Notification is a pending outbox entry written in the same transaction as
// the mutation it reports.
type Notification struct {
	ID           int64
	UserID       int64
	OrderID      int64
	Kind         NotificationKind
	Payload      string
	CreatedAt    time.Time
	DispatchedAt *time.Time
}
