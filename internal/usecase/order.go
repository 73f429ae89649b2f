package usecase

import (
	"context"
	"fmt"

	"github.com/ahmedmubarak14/poconfirm/internal/authz"
	domainErrors "github.com/ahmedmubarak14/poconfirm/internal/domain/errors"
	"github.com/ahmedmubarak14/poconfirm/internal/domain/model"
	"github.com/ahmedmubarak14/poconfirm/internal/domain/repository"
)

// OrderUseCase encapsulates order lifecycle logic for client sessions.
type OrderUseCase struct {
	orders repository.OrderRepository
	users  repository.UserRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, users repository.UserRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders, users: users}
}

// callerFor builds the mutation context for a direct session. The role is
// read from the store per call, not taken from the token.
func (u *OrderUseCase) callerFor(ctx context.Context, userID int64) (authz.CallerContext, error) {
	role, err := u.users.RoleOf(ctx, userID)
	if err != nil {
		return authz.CallerContext{}, fmt.Errorf("role lookup: %w", err)
	}
	return authz.CallerContext{PrincipalID: userID, Role: role, Trust: authz.TrustUser}, nil
}

// Create registers a new order owned by the calling client.
func (u *OrderUseCase) Create(ctx context.Context, userID, supplierID int64, amount float64) (*model.Order, error) {
	if !ValidateAmount(amount) {
		return nil, fmt.Errorf("%w: invalid amount", domainErrors.ErrAuthorizationDenied)
	}

	caller, err := u.callerFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	draft := model.Order{
		ClientID:   userID,
		SupplierID: supplierID,
		Amount:     amount,
		Status:     model.OrderStatusPendingClientConfirmation,
	}
	return u.orders.Create(ctx, caller, draft)
}

// ListByClient returns orders owned by the client, newest first.
func (u *OrderUseCase) ListByClient(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByClient(ctx, userID)
}

// Get returns one order, hiding rows the caller does not own unless the
// caller is an admin.
func (u *OrderUseCase) Get(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.ClientID != userID {
		role, err := u.users.RoleOf(ctx, userID)
		if err != nil {
			return nil, err
		}
		if role != model.RoleAdmin {
			return nil, domainErrors.ErrNotFound
		}
	}
	return order, nil
}

// Update applies a client patch under the store's update policy.
func (u *OrderUseCase) Update(ctx context.Context, userID, orderID int64, patch model.OrderPatch) (*model.Order, error) {
	caller, err := u.callerFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.orders.Update(ctx, caller, orderID, patch)
}

// Review moves an order out of pending admin confirmation. The caller's
// admin role is verified fresh; the transition itself runs on the trusted
// system path, since status is never writable from a direct session.
func (u *OrderUseCase) Review(ctx context.Context, adminID, orderID int64, approve bool) error {
	role, err := u.users.RoleOf(ctx, adminID)
	if err != nil {
		return fmt.Errorf("role lookup: %w", err)
	}
	if role != model.RoleAdmin {
		return fmt.Errorf("%w: admin role required", domainErrors.ErrAuthorizationDenied)
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status != model.OrderStatusPendingAdminConfirmation {
		return fmt.Errorf("%w: %s", domainErrors.ErrInvalidStatus, order.Status)
	}

	status := model.OrderStatusConfirmed
	if !approve {
		status = model.OrderStatusRejected
	}
	return u.orders.SetStatus(ctx, authz.SystemContext(), orderID, status)
}
