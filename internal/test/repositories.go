package test

import (
	"context"
	"fmt"
	"time"

	"github.com/ahmedmubarak14/poconfirm/internal/authz"
	domainErrors "github.com/ahmedmubarak14/poconfirm/internal/domain/errors"
	"github.com/ahmedmubarak14/poconfirm/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests. Update runs the same
// protected-field guard as the real store, with the caller role read from
// the stored row rather than the caller context.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Add seeds a user and returns it for test arrangement.
func (s *UserRepositoryStub) Add(user model.User) *model.User {
	if user.ID == 0 {
		user.ID = s.Next
		s.Next++
	} else if user.ID >= s.Next {
		s.Next = user.ID + 1
	}
	s.Users[user.Email] = &user
	s.ByID[user.ID] = &user
	return &user
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, email, passwordHash string, role model.Role) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.Users[email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	user := &model.User{
		ID:           s.Next,
		PublicID:     fmt.Sprintf("user-%d", s.Next),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		Status:       model.UserStatusActive,
		KYCStatus:    model.KYCStatusPending,
		DateJoined:   time.Now(),
	}
	s.Next++
	s.Users[email] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// RoleOf returns the stored role for the principal.
func (s *UserRepositoryStub) RoleOf(ctx context.Context, id int64) (model.Role, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

// Update mirrors the real store: fresh row, fresh caller role, guard, apply.
func (s *UserRepositoryStub) Update(ctx context.Context, caller authz.CallerContext, id int64, patch model.UserPatch) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	current, ok := s.ByID[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}

	if caller.Trust != authz.TrustSystem && !caller.Anonymous() {
		role, err := s.RoleOf(ctx, caller.PrincipalID)
		if err != nil {
			return nil, err
		}
		caller.Role = role
	}

	proposed := *current
	patch.Apply(&proposed)
	if d := authz.AuthorizeProfileUpdate(caller, *current, proposed); !d.Allowed {
		return nil, fmt.Errorf("%w: %s", domainErrors.ErrAuthorizationDenied, d.Reason)
	}

	*current = proposed
	return current, nil
}

// AdjustCredit mutates financial counters directly.
func (s *UserRepositoryStub) AdjustCredit(ctx context.Context, id int64, creditDelta, balanceDelta float64) error {
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.CreditUsed += creditDelta
	user.CurrentBalance += balanceDelta
	return nil
}

// OrderRepositoryStub stores orders in-memory and runs the same write
// policies and submit semantics as the real store. Function overrides win
// over the default behaviour.
type OrderRepositoryStub struct {
	CreateFn             func(context.Context, authz.CallerContext, model.Order) (*model.Order, error)
	GetByIDFn            func(context.Context, int64) (*model.Order, error)
	ListByClientFn       func(context.Context, int64) ([]model.Order, error)
	UpdateFn             func(context.Context, authz.CallerContext, int64, model.OrderPatch) (*model.Order, error)
	SubmitConfirmationFn func(context.Context, authz.CallerContext, int64, time.Time, bool) (*model.Order, error)
	SetStatusFn          func(context.Context, authz.CallerContext, int64, model.OrderStatus) error

	Orders map[int64]*model.Order
	Next   int64

	// Enqueued collects outbox entries written by submit and review paths.
	Enqueued []model.Notification
}

// NewOrderRepositoryStub constructs stub repository with initialized maps.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[int64]*model.Order), Next: 1}
}

// Add seeds an order and returns it for test arrangement.
func (s *OrderRepositoryStub) Add(order model.Order) *model.Order {
	if s.Orders == nil {
		s.Orders = make(map[int64]*model.Order)
	}
	if order.ID == 0 {
		if s.Next == 0 {
			s.Next = 1
		}
		order.ID = s.Next
		s.Next++
	} else if order.ID >= s.Next {
		s.Next = order.ID + 1
	}
	s.Orders[order.ID] = &order
	return &order
}

// Create evaluates the insert policy and stores the draft.
func (s *OrderRepositoryStub) Create(ctx context.Context, caller authz.CallerContext, draft model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, caller, draft)
	}
	if d := authz.AuthorizeOrderInsert(caller, draft); !d.Allowed {
		return nil, fmt.Errorf("%w: %s", domainErrors.ErrAuthorizationDenied, d.Reason)
	}
	created := s.Add(draft)
	created.CreatedAt = time.Now()
	return created, nil
}

// GetByID fetches order or returns not found.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	if order, ok := s.Orders[id]; ok {
		copied := *order
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListByClient returns orders owned by the client.
func (s *OrderRepositoryStub) ListByClient(ctx context.Context, clientID int64) ([]model.Order, error) {
	if s.ListByClientFn != nil {
		return s.ListByClientFn(ctx, clientID)
	}
	var out []model.Order
	for _, order := range s.Orders {
		if order.ClientID == clientID {
			out = append(out, *order)
		}
	}
	return out, nil
}

// Update evaluates the update policy against the stored row and applies the
// patch only on allow.
func (s *OrderRepositoryStub) Update(ctx context.Context, caller authz.CallerContext, id int64, patch model.OrderPatch) (*model.Order, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, caller, id, patch)
	}
	current, ok := s.Orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	proposed := *current
	patch.Apply(&proposed)
	if d := authz.AuthorizeOrderUpdate(caller, *current, proposed); !d.Allowed {
		return nil, fmt.Errorf("%w: %s", domainErrors.ErrAuthorizationDenied, d.Reason)
	}
	*current = proposed
	copied := *current
	return &copied, nil
}

// SubmitConfirmation mirrors the trusted store routine, including
// idempotency and single notification enqueue.
func (s *OrderRepositoryStub) SubmitConfirmation(ctx context.Context, caller authz.CallerContext, id int64, at time.Time, poUploaded bool) (*model.Order, error) {
	if s.SubmitConfirmationFn != nil {
		return s.SubmitConfirmationFn(ctx, caller, id, at, poUploaded)
	}
	current, ok := s.Orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if caller.Trust != authz.TrustSystem && current.ClientID != caller.PrincipalID {
		return nil, fmt.Errorf("%w: not the order owner", domainErrors.ErrAuthorizationDenied)
	}
	if current.ConfirmationSubmitted() {
		copied := *current
		return &copied, nil
	}
	if current.Status != model.OrderStatusDraft && current.Status != model.OrderStatusPendingClientConfirmation {
		return nil, fmt.Errorf("%w: %s", domainErrors.ErrInvalidStatus, current.Status)
	}

	stamp := at
	current.NotTestOrderConfirmedAt = &stamp
	current.PaymentTermsConfirmedAt = &stamp
	current.ClientPOConfirmationSubmittedAt = &stamp
	if poUploaded {
		current.ClientPOUploaded = true
	}
	current.Status = model.OrderStatusPendingAdminConfirmation

	s.Enqueued = append(s.Enqueued, model.Notification{
		UserID:    current.ClientID,
		OrderID:   current.ID,
		Kind:      model.NotificationPOSubmitted,
		CreatedAt: at,
	})

	copied := *current
	return &copied, nil
}

// SetStatus performs the trusted status transition.
func (s *OrderRepositoryStub) SetStatus(ctx context.Context, caller authz.CallerContext, id int64, status model.OrderStatus) error {
	if s.SetStatusFn != nil {
		return s.SetStatusFn(ctx, caller, id, status)
	}
	current, ok := s.Orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if caller.Trust != authz.TrustSystem {
		return fmt.Errorf("%w: status is not client writable", domainErrors.ErrAuthorizationDenied)
	}
	if current.Status == model.OrderStatusPendingAdminConfirmation && status != current.Status {
		s.Enqueued = append(s.Enqueued, model.Notification{
			UserID:    current.ClientID,
			OrderID:   current.ID,
			Kind:      model.NotificationOrderReviewed,
			CreatedAt: time.Now(),
		})
	}
	current.Status = status
	return nil
}

// NotificationRepositoryStub returns queued outbox entries once.
type NotificationRepositoryStub struct {
	SelectFn func(context.Context, int) ([]model.Notification, error)
	Pending  []model.Notification
}

// SelectBatchForDispatch drains up to limit pending entries.
func (s *NotificationRepositoryStub) SelectBatchForDispatch(ctx context.Context, limit int) ([]model.Notification, error) {
	if s.SelectFn != nil {
		return s.SelectFn(ctx, limit)
	}
	if len(s.Pending) == 0 {
		return nil, nil
	}
	n := limit
	if n > len(s.Pending) {
		n = len(s.Pending)
	}
	batch := s.Pending[:n]
	s.Pending = s.Pending[n:]
	return batch, nil
}

// LockerStub controls submit lock outcomes for workflow tests.
type LockerStub struct {
	AcquireFn func(context.Context, string) (bool, error)
	ReleaseFn func(context.Context, string) error

	Acquired []string
	Released []string
}

// Acquire records the key and returns true unless overridden.
func (s *LockerStub) Acquire(ctx context.Context, key string) (bool, error) {
	if s.AcquireFn != nil {
		return s.AcquireFn(ctx, key)
	}
	s.Acquired = append(s.Acquired, key)
	return true, nil
}

// Release records the key.
func (s *LockerStub) Release(ctx context.Context, key string) error {
	if s.ReleaseFn != nil {
		return s.ReleaseFn(ctx, key)
	}
	s.Released = append(s.Released, key)
	return nil
}
