package usecase

import (
	"context"
	"fmt"

	"github.com/ahmedmubarak14/poconfirm/internal/authz"
	domainErrors "github.com/ahmedmubarak14/poconfirm/internal/domain/errors"
	"github.com/ahmedmubarak14/poconfirm/internal/domain/model"
	"github.com/ahmedmubarak14/poconfirm/internal/domain/repository"
)

// ProfileUseCase encapsulates user profile reads and guarded updates.
type ProfileUseCase struct {
	users repository.UserRepository
}

// NewProfileUseCase constructs ProfileUseCase.
func NewProfileUseCase(users repository.UserRepository) *ProfileUseCase {
	return &ProfileUseCase{users: users}
}

// Get fetches a profile by identifier.
func (u *ProfileUseCase) Get(ctx context.Context, userID int64) (*model.User, error) {
	return u.users.GetByID(ctx, userID)
}

// RoleOf returns the principal's role, read fresh from the store.
func (u *ProfileUseCase) RoleOf(ctx context.Context, userID int64) (model.Role, error) {
	return u.users.RoleOf(ctx, userID)
}

// Update applies a patch to the target profile under the protected-field
// guard. Editing someone else's profile requires the admin role, verified
// fresh from the store.
func (u *ProfileUseCase) Update(ctx context.Context, callerID, targetID int64, patch model.UserPatch) (*model.User, error) {
	if callerID != targetID {
		role, err := u.users.RoleOf(ctx, callerID)
		if err != nil {
			return nil, fmt.Errorf("role lookup: %w", err)
		}
		if role != model.RoleAdmin {
			return nil, fmt.Errorf("%w: cannot edit another profile", domainErrors.ErrAuthorizationDenied)
		}
	}

	caller := authz.CallerContext{PrincipalID: callerID, Trust: authz.TrustUser}
	return u.users.Update(ctx, caller, targetID, patch)
}

// AdjustCredit mutates the financial counters through the trusted path.
func (u *ProfileUseCase) AdjustCredit(ctx context.Context, targetID int64, creditDelta, balanceDelta float64) error {
	return u.users.AdjustCredit(ctx, targetID, creditDelta, balanceDelta)
}
