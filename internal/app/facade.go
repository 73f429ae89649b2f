package app

import (
	"context"

	"github.com/ahmedmubarak14/poconfirm/internal/domain/model"
	"github.com/ahmedmubarak14/poconfirm/internal/domain/repository"
	"github.com/ahmedmubarak14/poconfirm/internal/usecase"
)

// POFacade aggregates the application's use cases behind one surface for the
// HTTP layer and the notification dispatcher.
type POFacade struct {
	auth          *usecase.AuthUseCase
	orders        *usecase.OrderUseCase
	profiles      *usecase.ProfileUseCase
	confirmation  *usecase.ConfirmationUseCase
	notifications repository.NotificationRepository
}

// NewPOFacade constructs POFacade.
func NewPOFacade(
	auth *usecase.AuthUseCase,
	orders *usecase.OrderUseCase,
	profiles *usecase.ProfileUseCase,
	confirmation *usecase.ConfirmationUseCase,
	notifications repository.NotificationRepository,
) *POFacade {
	return &POFacade{
		auth:          auth,
		orders:        orders,
		profiles:      profiles,
		confirmation:  confirmation,
		notifications: notifications,
	}
}

func (f *POFacade) Register(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, email, password)
	return token, err
}

func (f *POFacade) Authenticate(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, email, password)
	return token, err
}

func (f *POFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *POFacade) RoleOf(ctx context.Context, userID int64) (model.Role, error) {
	return f.profiles.RoleOf(ctx, userID)
}

func (f *POFacade) Profile(ctx context.Context, userID int64) (*model.User, error) {
	return f.profiles.Get(ctx, userID)
}

func (f *POFacade) UpdateProfile(ctx context.Context, callerID, targetID int64, patch model.UserPatch) (*model.User, error) {
	return f.profiles.Update(ctx, callerID, targetID, patch)
}

func (f *POFacade) AdjustCredit(ctx context.Context, targetID int64, creditDelta, balanceDelta float64) error {
	return f.profiles.AdjustCredit(ctx, targetID, creditDelta, balanceDelta)
}

func (f *POFacade) CreateOrder(ctx context.Context, userID, supplierID int64, amount float64) (*model.Order, error) {
	return f.orders.Create(ctx, userID, supplierID, amount)
}

func (f *POFacade) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListByClient(ctx, userID)
}

func (f *POFacade) Order(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	return f.orders.Get(ctx, userID, orderID)
}

func (f *POFacade) UpdateOrder(ctx context.Context, userID, orderID int64, patch model.OrderPatch) (*model.Order, error) {
	return f.orders.Update(ctx, userID, orderID, patch)
}

func (f *POFacade) ReviewOrder(ctx context.Context, adminID, orderID int64, approve bool) error {
	return f.orders.Review(ctx, adminID, orderID, approve)
}

func (f *POFacade) LoadConfirmation(ctx context.Context, userID, orderID int64) (model.ConfirmationState, *model.Order, error) {
	return f.confirmation.Load(ctx, userID, orderID)
}

func (f *POFacade) SubmitConfirmation(ctx context.Context, userID, orderID int64, input model.ConfirmationInput) (*model.Order, error) {
	return f.confirmation.Submit(ctx, userID, orderID, input)
}

func (f *POFacade) NotificationsForDispatch(ctx context.Context, limit int) ([]model.Notification, error) {
	return f.notifications.SelectBatchForDispatch(ctx, limit)
}
