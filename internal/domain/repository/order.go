package repository

import (
	"context"
	"time"

	"github.com/ahmedmubarak14/poconfirm/internal/authz"
	"github.com/ahmedmubarak14/poconfirm/internal/domain/model"
)

// OrderRepository describes persistence operations with orders. Mutations
// take the acting caller so the store can enforce its write policies inside
// the transaction that carries the change.
type OrderRepository interface {
	Create(ctx context.Context, caller authz.CallerContext, draft model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	ListByClient(ctx context.Context, clientID int64) ([]model.Order, error)

	// Update re-reads the row under lock, evaluates the update policy
	// against that fresh state, and applies the patch only on allow.
	Update(ctx context.Context, caller authz.CallerContext, id int64, patch model.OrderPatch) (*model.Order, error)

	// SubmitConfirmation is the trusted routine behind the PO confirmation
	// step: it stamps the three confirmation timestamps with the same
	// instant, moves status to pending admin confirmation, and enqueues
	// exactly one notification, all in one transaction. Re-submitting an
	// already submitted order is a no-op.
	SubmitConfirmation(ctx context.Context, caller authz.CallerContext, id int64, at time.Time, poUploaded bool) (*model.Order, error)

	// SetStatus performs an admin/system status transition.
	SetStatus(ctx context.Context, caller authz.CallerContext, id int64, status model.OrderStatus) error
}
