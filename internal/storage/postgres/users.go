package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ahmedmubarak14/poconfirm/internal/authz"
	domainErrors "github.com/ahmedmubarak14/poconfirm/internal/domain/errors"
	"github.com/ahmedmubarak14/poconfirm/internal/domain/model"
)

const userColumns = `id, public_id, email, password_hash, role, verified, status,
       kyc_status, date_joined, credit_limit, credit_used, current_balance,
       rating, display_name, phone, company_name`

const selectUserForUpdate = `SELECT ` + userColumns + ` FROM user_profiles WHERE id=$1 FOR UPDATE`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID, &u.PublicID, &u.Email, &u.PasswordHash, &u.Role, &u.Verified,
		&u.Status, &u.KYCStatus, &u.DateJoined, &u.CreditLimit, &u.CreditUsed,
		&u.CurrentBalance, &u.Rating, &u.DisplayName, &u.Phone, &u.CompanyName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, email, passwordHash string, role model.Role) (*model.User, error) {
	publicID := uuid.NewString()
	const query = `INSERT INTO user_profiles (public_id, email, password_hash, role)
                   VALUES ($1, $2, $3, $4)
                   RETURNING id, verified, status, kyc_status, date_joined`
	u := model.User{PublicID: publicID, Email: email, PasswordHash: passwordHash, Role: role}
	err := r.storage.pool.QueryRow(ctx, query, publicID, email, passwordHash, role).
		Scan(&u.ID, &u.Verified, &u.Status, &u.KYCStatus, &u.DateJoined)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM user_profiles WHERE email=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM user_profiles WHERE id=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

// RoleOf reads the principal's role directly from the store. Callers must
// not cache the result across mutations.
func (r *userRepository) RoleOf(ctx context.Context, id int64) (model.Role, error) {
	const query = `SELECT role FROM user_profiles WHERE id=$1`
	var role model.Role
	if err := r.storage.pool.QueryRow(ctx, query, id).Scan(&role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domainErrors.ErrNotFound
		}
		return "", err
	}
	return role, nil
}

const updateUserQuery = `UPDATE user_profiles
        SET role=$1, verified=$2, status=$3, kyc_status=$4, public_id=$5,
            date_joined=$6, credit_limit=$7, credit_used=$8,
            current_balance=$9, rating=$10, display_name=$11, phone=$12,
            company_name=$13
        WHERE id=$14`

// Update applies a profile patch under the protected-field guard. The target
// row is re-read under lock and the caller's role is re-read from the store
// inside the same transaction, so the guard never trusts a stale role or row
// snapshot. A denial rolls back the whole mutation.
func (r *userRepository) Update(ctx context.Context, caller authz.CallerContext, id int64, patch model.UserPatch) (*model.User, error) {
	var updated *model.User
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		old, err := scanUser(tx.QueryRow(ctx, selectUserForUpdate, id))
		if err != nil {
			return err
		}

		if caller.Trust != authz.TrustSystem && !caller.Anonymous() {
			var role model.Role
			if err := tx.QueryRow(ctx, `SELECT role FROM user_profiles WHERE id=$1`, caller.PrincipalID).Scan(&role); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return domainErrors.ErrNotFound
				}
				return err
			}
			caller.Role = role
		}

		proposed := *old
		patch.Apply(&proposed)

		if d := authz.AuthorizeProfileUpdate(caller, *old, proposed); !d.Allowed {
			return denied(d)
		}

		if _, err := tx.Exec(ctx, updateUserQuery,
			proposed.Role, proposed.Verified, proposed.Status, proposed.KYCStatus,
			proposed.PublicID, proposed.DateJoined, proposed.CreditLimit,
			proposed.CreditUsed, proposed.CurrentBalance, proposed.Rating,
			proposed.DisplayName, proposed.Phone, proposed.CompanyName,
			id,
		); err != nil {
			return err
		}

		updated = &proposed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// AdjustCredit is a trusted routine mutating the financial counters.
func (r *userRepository) AdjustCredit(ctx context.Context, id int64, creditDelta, balanceDelta float64) error {
	const query = `UPDATE user_profiles
                   SET credit_used = credit_used + $1,
                       current_balance = current_balance + $2
                   WHERE id=$3`
	tag, err := r.storage.pool.Exec(ctx, query, creditDelta, balanceDelta, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
