package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ahmedmubarak14/poconfirm/internal/adapter/submitlock"
	"github.com/ahmedmubarak14/poconfirm/internal/authz"
	domainErrors "github.com/ahmedmubarak14/poconfirm/internal/domain/errors"
	"github.com/ahmedmubarak14/poconfirm/internal/domain/model"
	"github.com/ahmedmubarak14/poconfirm/internal/domain/repository"
)

// ConfirmationUseCase drives the two-step PO confirmation workflow:
// Unconfirmed until both confirmations are accepted and the write lands,
// Submitted afterwards. Submission is idempotent on reload.
type ConfirmationUseCase struct {
	orders repository.OrderRepository
	users  repository.UserRepository
	locks  submitlock.Locker
	now    func() time.Time
}

// NewConfirmationUseCase constructs ConfirmationUseCase.
func NewConfirmationUseCase(orders repository.OrderRepository, users repository.UserRepository, locks submitlock.Locker) *ConfirmationUseCase {
	return &ConfirmationUseCase{orders: orders, users: users, locks: locks, now: time.Now}
}

// Load resumes the workflow for an order. An order whose submission
// timestamp is already set comes back Submitted without requiring a
// re-submission.
func (u *ConfirmationUseCase) Load(ctx context.Context, userID, orderID int64) (model.ConfirmationState, *model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return "", nil, err
	}
	if order.ClientID != userID {
		role, err := u.users.RoleOf(ctx, userID)
		if err != nil {
			return "", nil, err
		}
		if role != model.RoleAdmin {
			return "", nil, domainErrors.ErrNotFound
		}
	}
	return order.ConfirmationState(), order, nil
}

// Submit performs the Unconfirmed to Submitted transition. Both
// confirmations must be accepted; duplicate submits for the same order are
// rejected while a write is in flight; a store failure leaves the workflow
// in Unconfirmed for a manual retry.
func (u *ConfirmationUseCase) Submit(ctx context.Context, userID, orderID int64, input model.ConfirmationInput) (*model.Order, error) {
	if !input.RealOrderConfirmed || !input.PaymentTermsConfirmed {
		return nil, domainErrors.ErrConfirmationIncomplete
	}

	key := fmt.Sprintf("poconfirm:submit:%d", orderID)
	ok, err := u.locks.Acquire(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("acquire submit lock: %w", err)
	}
	if !ok {
		return nil, domainErrors.ErrSubmitInFlight
	}
	defer func() { _ = u.locks.Release(ctx, key) }()

	caller := authz.CallerContext{PrincipalID: userID, Trust: authz.TrustUser}
	return u.orders.SubmitConfirmation(ctx, caller, orderID, u.now(), input.POUploaded)
}
