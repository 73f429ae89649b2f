package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	"github.com/ahmedmubarak14/poconfirm/internal/authz"
	domainErrors "github.com/ahmedmubarak14/poconfirm/internal/domain/errors"
	"github.com/ahmedmubarak14/poconfirm/internal/domain/model"
)

var userRowColumns = []string{
	"id", "public_id", "email", "password_hash", "role", "verified", "status",
	"kyc_status", "date_joined", "credit_limit", "credit_used", "current_balance",
	"rating", "display_name", "phone", "company_name",
}

func userRows(u model.User) *pgxmockv3.Rows {
	return pgxmockv3.NewRows(userRowColumns).AddRow(
		u.ID, u.PublicID, u.Email, u.PasswordHash, u.Role, u.Verified,
		u.Status, u.KYCStatus, u.DateJoined, u.CreditLimit, u.CreditUsed,
		u.CurrentBalance, u.Rating, u.DisplayName, u.Phone, u.CompanyName,
	)
}

func clientUser() model.User {
	return model.User{
		ID:           1,
		PublicID:     "a4b2cf01-44a3-4a38-8d5e-c7e43c1b1001",
		Email:        "client@example.com",
		PasswordHash: "hash",
		Role:         model.RoleClient,
		Status:       model.UserStatusActive,
		KYCStatus:    model.KYCStatusPending,
		DateJoined:   time.Now().Add(-24 * time.Hour),
	}
}

func TestUserCreate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		storage, mock := newMockStorage(t)
		defer mock.Close()
		repo := storage.Users()

		joined := time.Now()
		mock.ExpectQuery("INSERT INTO user_profiles").
			WithArgs(pgxmockv3.AnyArg(), "client@example.com", "hash", model.RoleClient).
			WillReturnRows(pgxmockv3.NewRows([]string{"id", "verified", "status", "kyc_status", "date_joined"}).
				AddRow(int64(1), false, model.UserStatusActive, model.KYCStatusPending, joined))

		user, err := repo.Create(context.Background(), "client@example.com", "hash", model.RoleClient)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.ID != 1 || user.PublicID == "" {
			t.Fatalf("unexpected user %+v", user)
		}
		if user.Status != model.UserStatusActive || user.KYCStatus != model.KYCStatusPending {
			t.Fatalf("defaults not returned: %+v", user)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		storage, mock := newMockStorage(t)
		defer mock.Close()
		repo := storage.Users()

		mock.ExpectQuery("INSERT INTO user_profiles").
			WithArgs(pgxmockv3.AnyArg(), "client@example.com", "hash", model.RoleClient).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		if _, err := repo.Create(context.Background(), "client@example.com", "hash", model.RoleClient); !errors.Is(err, domainErrors.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})
}

func TestUserGetters(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := storage.Users()

	mock.ExpectQuery("SELECT (.+) FROM user_profiles WHERE email=").
		WithArgs("client@example.com").
		WillReturnRows(userRows(clientUser()))
	user, err := repo.GetByEmail(context.Background(), "client@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 1 {
		t.Fatalf("unexpected user %+v", user)
	}

	mock.ExpectQuery("SELECT (.+) FROM user_profiles WHERE id=").
		WithArgs(int64(1)).
		WillReturnRows(userRows(clientUser()))
	if _, err := repo.GetByID(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectQuery("SELECT (.+) FROM user_profiles WHERE id=").
		WithArgs(int64(9)).
		WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByID(context.Background(), 9); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRoleOf(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := storage.Users()

	mock.ExpectQuery("SELECT role FROM user_profiles WHERE id=").
		WithArgs(int64(2)).
		WillReturnRows(pgxmockv3.NewRows([]string{"role"}).AddRow(model.RoleAdmin))
	role, err := repo.RoleOf(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role != model.RoleAdmin {
		t.Fatalf("expected admin, got %s", role)
	}

	mock.ExpectQuery("SELECT role FROM user_profiles WHERE id=").
		WithArgs(int64(9)).
		WillReturnError(pgx.ErrNoRows)
	if _, err := repo.RoleOf(context.Background(), 9); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserUpdateGuard(t *testing.T) {
	caller := func(id int64) authz.CallerContext {
		return authz.CallerContext{PrincipalID: id, Trust: authz.TrustUser}
	}

	t.Run("free fields allowed with fresh role", func(t *testing.T) {
		storage, mock := newMockStorage(t)
		defer mock.Close()
		repo := storage.Users()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM user_profiles WHERE id=(.+) FOR UPDATE").
			WithArgs(int64(1)).
			WillReturnRows(userRows(clientUser()))
		mock.ExpectQuery("SELECT role FROM user_profiles WHERE id=").
			WithArgs(int64(1)).
			WillReturnRows(pgxmockv3.NewRows([]string{"role"}).AddRow(model.RoleClient))
		mock.ExpectExec("UPDATE user_profiles").
			WithArgs(
				pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(),
				pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(),
				pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(),
				"Acme LLC", int64(1),
			).
			WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
		mock.ExpectCommit()

		name := "Acme LLC"
		user, err := repo.Update(context.Background(), caller(1), 1, model.UserPatch{CompanyName: &name})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.CompanyName != name {
			t.Fatalf("patch not applied: %q", user.CompanyName)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet expectations: %v", err)
		}
	})

	t.Run("protected field denied and rolled back", func(t *testing.T) {
		storage, mock := newMockStorage(t)
		defer mock.Close()
		repo := storage.Users()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM user_profiles WHERE id=(.+) FOR UPDATE").
			WithArgs(int64(1)).
			WillReturnRows(userRows(clientUser()))
		mock.ExpectQuery("SELECT role FROM user_profiles WHERE id=").
			WithArgs(int64(1)).
			WillReturnRows(pgxmockv3.NewRows([]string{"role"}).AddRow(model.RoleClient))
		mock.ExpectRollback()

		role := model.RoleAdmin
		if _, err := repo.Update(context.Background(), caller(1), 1, model.UserPatch{Role: &role}); !errors.Is(err, domainErrors.ErrAuthorizationDenied) {
			t.Fatalf("expected denial, got %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet expectations: %v", err)
		}
	})

	t.Run("live role beats stale caller role", func(t *testing.T) {
		storage, mock := newMockStorage(t)
		defer mock.Close()
		repo := storage.Users()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM user_profiles WHERE id=(.+) FOR UPDATE").
			WithArgs(int64(1)).
			WillReturnRows(userRows(clientUser()))
		mock.ExpectQuery("SELECT role FROM user_profiles WHERE id=").
			WithArgs(int64(2)).
			WillReturnRows(pgxmockv3.NewRows([]string{"role"}).AddRow(model.RoleClient))
		mock.ExpectRollback()

		// Caller claims admin but the store says client now.
		stale := authz.CallerContext{PrincipalID: 2, Role: model.RoleAdmin, Trust: authz.TrustUser}
		verified := true
		if _, err := repo.Update(context.Background(), stale, 1, model.UserPatch{Verified: &verified}); !errors.Is(err, domainErrors.ErrAuthorizationDenied) {
			t.Fatalf("expected denial, got %v", err)
		}
	})

	t.Run("admin passes guard on protected fields", func(t *testing.T) {
		storage, mock := newMockStorage(t)
		defer mock.Close()
		repo := storage.Users()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM user_profiles WHERE id=(.+) FOR UPDATE").
			WithArgs(int64(1)).
			WillReturnRows(userRows(clientUser()))
		mock.ExpectQuery("SELECT role FROM user_profiles WHERE id=").
			WithArgs(int64(2)).
			WillReturnRows(pgxmockv3.NewRows([]string{"role"}).AddRow(model.RoleAdmin))
		mock.ExpectExec("UPDATE user_profiles").
			WithArgs(
				pgxmockv3.AnyArg(), true, pgxmockv3.AnyArg(), pgxmockv3.AnyArg(),
				pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(),
				pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(),
				pgxmockv3.AnyArg(), int64(1),
			).
			WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
		mock.ExpectCommit()

		verified := true
		user, err := repo.Update(context.Background(), caller(2), 1, model.UserPatch{Verified: &verified})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !user.Verified {
			t.Fatal("patch not applied")
		}
	})

	t.Run("system trust skips role lookup", func(t *testing.T) {
		storage, mock := newMockStorage(t)
		defer mock.Close()
		repo := storage.Users()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM user_profiles WHERE id=(.+) FOR UPDATE").
			WithArgs(int64(1)).
			WillReturnRows(userRows(clientUser()))
		mock.ExpectExec("UPDATE user_profiles").
			WithArgs(
				pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), model.KYCStatusApproved,
				pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(),
				pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(),
				pgxmockv3.AnyArg(), int64(1),
			).
			WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
		mock.ExpectCommit()

		kyc := model.KYCStatusApproved
		if _, err := repo.Update(context.Background(), authz.SystemContext(), 1, model.UserPatch{KYCStatus: &kyc}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet expectations: %v", err)
		}
	})

	t.Run("anonymous backend write skips role lookup", func(t *testing.T) {
		storage, mock := newMockStorage(t)
		defer mock.Close()
		repo := storage.Users()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM user_profiles WHERE id=(.+) FOR UPDATE").
			WithArgs(int64(1)).
			WillReturnRows(userRows(clientUser()))
		mock.ExpectExec("UPDATE user_profiles").
			WithArgs(
				pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(),
				pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(),
				pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), "x", pgxmockv3.AnyArg(),
				pgxmockv3.AnyArg(), int64(1),
			).
			WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
		mock.ExpectCommit()

		name := "x"
		user, err := repo.Update(context.Background(), authz.CallerContext{Trust: authz.TrustUser}, 1, model.UserPatch{DisplayName: &name})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.DisplayName != name {
			t.Fatalf("patch not applied: %q", user.DisplayName)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet expectations: %v", err)
		}
	})
}

func TestUserAdjustCredit(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := storage.Users()

	mock.ExpectExec("UPDATE user_profiles").
		WithArgs(100.0, -40.0, int64(1)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := repo.AdjustCredit(context.Background(), 1, 100, -40); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("UPDATE user_profiles").
		WithArgs(1.0, 1.0, int64(9)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	if err := repo.AdjustCredit(context.Background(), 9, 1, 1); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
