package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// migration is one append-only schema step. Each step records its identifier
// in schema_migrations and is skipped on subsequent runs; the statements
// themselves are written to be re-runnable as well.
type migration struct {
	id         string
	statements []string
}

const createMigrationLog = `CREATE TABLE IF NOT EXISTS schema_migrations (
    id TEXT PRIMARY KEY,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

var migrations = []migration{
	{
		id: "0001_create_user_profiles",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS user_profiles (
                id BIGSERIAL PRIMARY KEY,
                public_id UUID NOT NULL UNIQUE,
                email TEXT NOT NULL UNIQUE,
                password_hash TEXT NOT NULL,
                role TEXT NOT NULL DEFAULT 'CLIENT',
                verified BOOLEAN NOT NULL DEFAULT FALSE,
                status TEXT NOT NULL DEFAULT 'ACTIVE',
                kyc_status TEXT NOT NULL DEFAULT 'PENDING',
                date_joined TIMESTAMPTZ NOT NULL DEFAULT NOW(),
                credit_limit DOUBLE PRECISION NOT NULL DEFAULT 0,
                credit_used DOUBLE PRECISION NOT NULL DEFAULT 0,
                current_balance DOUBLE PRECISION NOT NULL DEFAULT 0,
                rating DOUBLE PRECISION NOT NULL DEFAULT 0,
                display_name TEXT NOT NULL DEFAULT '',
                phone TEXT NOT NULL DEFAULT '',
                company_name TEXT NOT NULL DEFAULT ''
            )`,
		},
	},
	{
		id: "0002_create_orders",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS orders (
                id BIGSERIAL PRIMARY KEY,
                public_id UUID NOT NULL UNIQUE,
                client_id BIGINT NOT NULL REFERENCES user_profiles(id),
                supplier_id BIGINT NOT NULL DEFAULT 0,
                status TEXT NOT NULL DEFAULT 'DRAFT',
                amount DOUBLE PRECISION NOT NULL DEFAULT 0,
                created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
                updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
            )`,
			`CREATE INDEX IF NOT EXISTS idx_orders_client ON orders(client_id, created_at DESC)`,
		},
	},
	{
		id: "0003_po_confirmation_columns",
		statements: []string{
			`ALTER TABLE orders ADD COLUMN IF NOT EXISTS not_test_order_confirmed_at TIMESTAMPTZ`,
			`ALTER TABLE orders ADD COLUMN IF NOT EXISTS payment_terms_confirmed_at TIMESTAMPTZ`,
			`ALTER TABLE orders ADD COLUMN IF NOT EXISTS client_po_confirmation_submitted_at TIMESTAMPTZ`,
			`ALTER TABLE orders ADD COLUMN IF NOT EXISTS client_po_uploaded BOOLEAN NOT NULL DEFAULT FALSE`,
		},
	},
	{
		id: "0004_payment_submission_columns",
		statements: []string{
			`ALTER TABLE orders ADD COLUMN IF NOT EXISTS payment_reference TEXT NOT NULL DEFAULT ''`,
			`ALTER TABLE orders ADD COLUMN IF NOT EXISTS payment_notes TEXT NOT NULL DEFAULT ''`,
			`ALTER TABLE orders ADD COLUMN IF NOT EXISTS payment_submitted_at TIMESTAMPTZ`,
		},
	},
	{
		id: "0005_create_notifications",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS notifications (
                id BIGSERIAL PRIMARY KEY,
                user_id BIGINT NOT NULL REFERENCES user_profiles(id),
                order_id BIGINT NOT NULL REFERENCES orders(id),
                kind TEXT NOT NULL,
                payload TEXT NOT NULL DEFAULT '',
                created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
                dispatched_at TIMESTAMPTZ
            )`,
			`CREATE INDEX IF NOT EXISTS idx_notifications_pending ON notifications(created_at) WHERE dispatched_at IS NULL`,
		},
	},
}

// Migrate applies pending migrations. It is safe to run on every start: each
// applied step is logged by id and skipped afterwards without error.
func (s *Storage) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createMigrationLog); err != nil {
		return fmt.Errorf("init migration log: %w", err)
	}

	for _, m := range migrations {
		applied, err := s.migrationApplied(ctx, m.id)
		if err != nil {
			return fmt.Errorf("check migration %s: %w", m.id, err)
		}
		if applied {
			continue
		}
		if err := s.applyMigration(ctx, m); err != nil {
			return fmt.Errorf("apply migration %s: %w", m.id, err)
		}
	}

	return nil
}

func (s *Storage) migrationApplied(ctx context.Context, id string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE id=$1)`
	var applied bool
	if err := s.pool.QueryRow(ctx, query, id).Scan(&applied); err != nil {
		return false, err
	}
	return applied, nil
}

func (s *Storage) applyMigration(ctx context.Context, m migration) error {
	return s.WithinTransaction(ctx, func(tx pgx.Tx) error {
		for _, stmt := range m.statements {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return err
			}
		}
		const logQuery = `INSERT INTO schema_migrations (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`
		_, err := tx.Exec(ctx, logQuery, m.id)
		return err
	})
}
