package repository

import (
	"context"

	"github.com/ahmedmubarak14/poconfirm/internal/authz"
	"github.com/ahmedmubarak14/poconfirm/internal/domain/model"
)

// UserRepository describes persistence operations for user profiles.
type UserRepository interface {
	Create(ctx context.Context, email, passwordHash string, role model.Role) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)

	// RoleOf returns the principal's role read fresh from the store. The
	// profile guard depends on this lookup never being cached.
	RoleOf(ctx context.Context, id int64) (model.Role, error)

	// Update re-reads the row under lock, re-reads the caller's role, runs
	// the protected-field guard, and applies the patch only on allow.
	Update(ctx context.Context, caller authz.CallerContext, id int64, patch model.UserPatch) (*model.User, error)

	// AdjustCredit is a trusted routine mutating the financial counters.
	AdjustCredit(ctx context.Context, id int64, creditDelta, balanceDelta float64) error
}
