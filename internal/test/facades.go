package test

import (
	"context"
	"sync"
	"time"

	"github.com/ahmedmubarak14/poconfirm/internal/domain/model"
)

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateFn func(context.Context, int64, int64, float64) (*model.Order, error)
	OrdersFn func(context.Context, int64) ([]model.Order, error)
	OrderFn  func(context.Context, int64, int64) (*model.Order, error)
	UpdateFn func(context.Context, int64, int64, model.OrderPatch) (*model.Order, error)
}

// CreateOrder delegates to provided function or returns a default order.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, userID, supplierID int64, amount float64) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, userID, supplierID, amount)
	}
	return &model.Order{ID: 1, ClientID: userID, SupplierID: supplierID, Amount: amount, Status: model.OrderStatusPendingClientConfirmation}, nil
}

// Orders returns predefined orders for given user.
func (s OrderFacadeStub) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return []model.Order{{ID: 1, ClientID: userID}}, nil
}

// Order returns one order by identifier.
func (s OrderFacadeStub) Order(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, userID, orderID)
	}
	return &model.Order{ID: orderID, ClientID: userID}, nil
}

// UpdateOrder applies the configured update handler.
func (s OrderFacadeStub) UpdateOrder(ctx context.Context, userID, orderID int64, patch model.OrderPatch) (*model.Order, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, userID, orderID, patch)
	}
	order := model.Order{ID: orderID, ClientID: userID}
	patch.Apply(&order)
	return &order, nil
}

// ConfirmationFacadeStub simulates the confirmation workflow.
type ConfirmationFacadeStub struct {
	LoadFn   func(context.Context, int64, int64) (model.ConfirmationState, *model.Order, error)
	SubmitFn func(context.Context, int64, int64, model.ConfirmationInput) (*model.Order, error)
}

// LoadConfirmation returns configured state or a default unconfirmed order.
func (s ConfirmationFacadeStub) LoadConfirmation(ctx context.Context, userID, orderID int64) (model.ConfirmationState, *model.Order, error) {
	if s.LoadFn != nil {
		return s.LoadFn(ctx, userID, orderID)
	}
	return model.ConfirmationStateUnconfirmed, &model.Order{ID: orderID, ClientID: userID}, nil
}

// SubmitConfirmation executes configured submit handler.
func (s ConfirmationFacadeStub) SubmitConfirmation(ctx context.Context, userID, orderID int64, input model.ConfirmationInput) (*model.Order, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, userID, orderID, input)
	}
	at := time.Now()
	return &model.Order{
		ID:                              orderID,
		ClientID:                        userID,
		Status:                          model.OrderStatusPendingAdminConfirmation,
		NotTestOrderConfirmedAt:         &at,
		PaymentTermsConfirmedAt:         &at,
		ClientPOConfirmationSubmittedAt: &at,
		ClientPOUploaded:                input.POUploaded,
	}, nil
}

// ProfileFacadeStub simulates profile operations.
type ProfileFacadeStub struct {
	ProfileFn       func(context.Context, int64) (*model.User, error)
	UpdateProfileFn func(context.Context, int64, int64, model.UserPatch) (*model.User, error)
}

// Profile returns configured user or a default one.
func (s ProfileFacadeStub) Profile(ctx context.Context, userID int64) (*model.User, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, userID)
	}
	return &model.User{ID: userID, Role: model.RoleClient, Status: model.UserStatusActive}, nil
}

// UpdateProfile applies configured update handler.
func (s ProfileFacadeStub) UpdateProfile(ctx context.Context, callerID, targetID int64, patch model.UserPatch) (*model.User, error) {
	if s.UpdateProfileFn != nil {
		return s.UpdateProfileFn(ctx, callerID, targetID, patch)
	}
	user := model.User{ID: targetID, Role: model.RoleClient}
	patch.Apply(&user)
	return &user, nil
}

// AdminFacadeStub simulates administrator-only operations.
type AdminFacadeStub struct {
	RoleOfFn func(context.Context, int64) (model.Role, error)
	ReviewFn func(context.Context, int64, int64, bool) error
	AdjustFn func(context.Context, int64, float64, float64) error
}

// RoleOf returns configured role or admin by default.
func (s AdminFacadeStub) RoleOf(ctx context.Context, userID int64) (model.Role, error) {
	if s.RoleOfFn != nil {
		return s.RoleOfFn(ctx, userID)
	}
	return model.RoleAdmin, nil
}

// ReviewOrder executes configured review handler.
func (s AdminFacadeStub) ReviewOrder(ctx context.Context, adminID, orderID int64, approve bool) error {
	if s.ReviewFn != nil {
		return s.ReviewFn(ctx, adminID, orderID, approve)
	}
	return nil
}

// AdjustCredit executes configured adjustment handler.
func (s AdminFacadeStub) AdjustCredit(ctx context.Context, targetID int64, creditDelta, balanceDelta float64) error {
	if s.AdjustFn != nil {
		return s.AdjustFn(ctx, targetID, creditDelta, balanceDelta)
	}
	return nil
}

// SenderStub records sends for dispatcher tests.
type SenderStub struct {
	SendFn func(context.Context, model.Notification) error

	mu   sync.Mutex
	Sent []model.Notification
}

// Send records the notification and delegates to the override when set.
func (s *SenderStub) Send(ctx context.Context, n model.Notification) error {
	if s.SendFn != nil {
		return s.SendFn(ctx, n)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sent = append(s.Sent, n)
	return nil
}

// SentCount reports how many notifications were recorded.
func (s *SenderStub) SentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Sent)
}

// OutboxSourceStub feeds dispatcher tests with predefined batches.
type OutboxSourceStub struct {
	Batches [][]model.Notification
	FetchFn func(context.Context, int) ([]model.Notification, error)

	mu   sync.Mutex
	call int
}

// NotificationsForDispatch returns batches in order, then empties.
func (s *OutboxSourceStub) NotificationsForDispatch(ctx context.Context, limit int) ([]model.Notification, error) {
	if s.FetchFn != nil {
		return s.FetchFn(ctx, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.call < len(s.Batches) {
		batch := s.Batches[s.call]
		s.call++
		return batch, nil
	}
	return nil, nil
}
