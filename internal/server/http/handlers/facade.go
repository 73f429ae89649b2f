package handlers

import (
	"context"

	"github.com/ahmedmubarak14/poconfirm/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, email, password string) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, userID, supplierID int64, amount float64) (*model.Order, error)
	Orders(ctx context.Context, userID int64) ([]model.Order, error)
	Order(ctx context.Context, userID, orderID int64) (*model.Order, error)
	UpdateOrder(ctx context.Context, userID, orderID int64, patch model.OrderPatch) (*model.Order, error)
}

// ConfirmationFacade drives the PO confirmation workflow over HTTP.
type ConfirmationFacade interface {
	LoadConfirmation(ctx context.Context, userID, orderID int64) (model.ConfirmationState, *model.Order, error)
	SubmitConfirmation(ctx context.Context, userID, orderID int64, input model.ConfirmationInput) (*model.Order, error)
}

// ProfileFacade provides profile reads and guarded updates.
type ProfileFacade interface {
	Profile(ctx context.Context, userID int64) (*model.User, error)
	UpdateProfile(ctx context.Context, callerID, targetID int64, patch model.UserPatch) (*model.User, error)
}

// AdminFacade aggregates the administrator-only operations.
type AdminFacade interface {
	ProfileFacade
	RoleOf(ctx context.Context, userID int64) (model.Role, error)
	ReviewOrder(ctx context.Context, adminID, orderID int64, approve bool) error
	AdjustCredit(ctx context.Context, targetID int64, creditDelta, balanceDelta float64) error
}

// Facade aggregates the full set of operations used across handlers.
type Facade interface {
	AuthFacade
	OrderFacade
	ConfirmationFacade
	AdminFacade
}
