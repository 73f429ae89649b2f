package repository

import (
	"context"

	"github.com/ahmedmubarak14/poconfirm/internal/domain/model"
)

// NotificationRepository describes access to the notification outbox.
// Entries are enqueued by trusted store routines in the same transaction as
// the mutation they report; the dispatcher drains them. Selected entries are
// claimed (stamped dispatched) in the same transaction, so each entry is
// handed to exactly one dispatch attempt.
type NotificationRepository interface {
	SelectBatchForDispatch(ctx context.Context, limit int) ([]model.Notification, error)
}
