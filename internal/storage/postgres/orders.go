package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ahmedmubarak14/poconfirm/internal/authz"
	domainErrors "github.com/ahmedmubarak14/poconfirm/internal/domain/errors"
	"github.com/ahmedmubarak14/poconfirm/internal/domain/model"
)

const orderColumns = `id, public_id, client_id, supplier_id, status, amount,
       not_test_order_confirmed_at, payment_terms_confirmed_at,
       client_po_confirmation_submitted_at, client_po_uploaded,
       payment_reference, payment_notes, payment_submitted_at,
       created_at, updated_at`

const selectOrderForUpdate = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1 FOR UPDATE`

func denied(d authz.Decision) error {
	return fmt.Errorf("%w: %s", domainErrors.ErrAuthorizationDenied, d.Reason)
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.PublicID, &o.ClientID, &o.SupplierID, &o.Status, &o.Amount,
		&o.NotTestOrderConfirmedAt, &o.PaymentTermsConfirmedAt,
		&o.ClientPOConfirmationSubmittedAt, &o.ClientPOUploaded,
		&o.PaymentReference, &o.PaymentNotes, &o.PaymentSubmittedAt,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// Create inserts a new order after evaluating the insert policy: the row
// must belong to the caller and the caller must hold the CLIENT role.
func (r *orderRepository) Create(ctx context.Context, caller authz.CallerContext, draft model.Order) (*model.Order, error) {
	if d := authz.AuthorizeOrderInsert(caller, draft); !d.Allowed {
		return nil, denied(d)
	}

	if draft.PublicID == "" {
		draft.PublicID = uuid.NewString()
	}
	if draft.Status == "" {
		draft.Status = model.OrderStatusPendingClientConfirmation
	}

	const query = `INSERT INTO orders (public_id, client_id, supplier_id, status, amount)
                   VALUES ($1, $2, $3, $4, $5)
                   RETURNING id, created_at, updated_at`
	err := r.storage.pool.QueryRow(ctx, query,
		draft.PublicID, draft.ClientID, draft.SupplierID, draft.Status, draft.Amount,
	).Scan(&draft.ID, &draft.CreatedAt, &draft.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	return scanOrder(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *orderRepository) ListByClient(ctx context.Context, clientID int64) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE client_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(
			&o.ID, &o.PublicID, &o.ClientID, &o.SupplierID, &o.Status, &o.Amount,
			&o.NotTestOrderConfirmedAt, &o.PaymentTermsConfirmedAt,
			&o.ClientPOConfirmationSubmittedAt, &o.ClientPOUploaded,
			&o.PaymentReference, &o.PaymentNotes, &o.PaymentSubmittedAt,
			&o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

const updateOrderQuery = `UPDATE orders
        SET status=$1, amount=$2, supplier_id=$3,
            not_test_order_confirmed_at=$4, payment_terms_confirmed_at=$5,
            client_po_confirmation_submitted_at=$6, client_po_uploaded=$7,
            payment_reference=$8, payment_notes=$9, payment_submitted_at=$10,
            updated_at=NOW()
        WHERE id=$11`

// Update applies a patch under the store's update policy. The row is re-read
// under lock in the same transaction, so the status-immutability rule is
// evaluated against live state, never a snapshot captured earlier.
func (r *orderRepository) Update(ctx context.Context, caller authz.CallerContext, id int64, patch model.OrderPatch) (*model.Order, error) {
	var updated *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		current, err := scanOrder(tx.QueryRow(ctx, selectOrderForUpdate, id))
		if err != nil {
			return err
		}

		proposed := *current
		patch.Apply(&proposed)

		if d := authz.AuthorizeOrderUpdate(caller, *current, proposed); !d.Allowed {
			return denied(d)
		}

		if _, err := tx.Exec(ctx, updateOrderQuery,
			proposed.Status, proposed.Amount, proposed.SupplierID,
			proposed.NotTestOrderConfirmedAt, proposed.PaymentTermsConfirmedAt,
			proposed.ClientPOConfirmationSubmittedAt, proposed.ClientPOUploaded,
			proposed.PaymentReference, proposed.PaymentNotes, proposed.PaymentSubmittedAt,
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

const submitConfirmationQuery = `UPDATE orders
        SET not_test_order_confirmed_at=$1, payment_terms_confirmed_at=$1,
            client_po_confirmation_submitted_at=$1, client_po_uploaded=$2,
            status=$3, updated_at=NOW()
        WHERE id=$4`

const enqueueNotificationQuery = `INSERT INTO notifications (user_id, order_id, kind, payload)
        VALUES ($1, $2, $3, $4)`

// SubmitConfirmation is the trusted routine behind the client PO
// confirmation step. It verifies ownership itself, stamps the three
// confirmation timestamps with one instant, moves status to pending admin
// confirmation, and enqueues one notification. Already submitted orders are
// returned unchanged and enqueue nothing.
func (r *orderRepository) SubmitConfirmation(ctx context.Context, caller authz.CallerContext, id int64, at time.Time, poUploaded bool) (*model.Order, error) {
	at = at.UTC()

	var result *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		current, err := scanOrder(tx.QueryRow(ctx, selectOrderForUpdate, id))
		if err != nil {
			return err
		}

		if caller.Trust != authz.TrustSystem && caller.PrincipalID != current.ClientID {
			return denied(authz.Deny("order does not belong to acting principal"))
		}

		if current.ConfirmationSubmitted() {
			result = current
			return nil
		}

		if current.Status != model.OrderStatusDraft && current.Status != model.OrderStatusPendingClientConfirmation {
			return fmt.Errorf("%w: %s", domainErrors.ErrInvalidStatus, current.Status)
		}

		if _, err := tx.Exec(ctx, submitConfirmationQuery,
			at, poUploaded, model.OrderStatusPendingAdminConfirmation, id,
		); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, enqueueNotificationQuery,
			current.ClientID, current.ID, model.NotificationPOSubmitted, current.PublicID,
		); err != nil {
			return err
		}

		updated := *current
		updated.NotTestOrderConfirmedAt = &at
		updated.PaymentTermsConfirmedAt = &at
		updated.ClientPOConfirmationSubmittedAt = &at
		updated.ClientPOUploaded = poUploaded
		updated.Status = model.OrderStatusPendingAdminConfirmation
		result = &updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SetStatus performs a status transition under the update policy. Only
// system-trust callers pass; direct sessions are denied by the engine.
func (r *orderRepository) SetStatus(ctx context.Context, caller authz.CallerContext, id int64, status model.OrderStatus) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		current, err := scanOrder(tx.QueryRow(ctx, selectOrderForUpdate, id))
		if err != nil {
			return err
		}

		proposed := *current
		proposed.Status = status

		if d := authz.AuthorizeOrderUpdate(caller, *current, proposed); !d.Allowed {
			return denied(d)
		}

		if _, err := tx.Exec(ctx, `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`, status, id); err != nil {
			return err
		}

		if current.Status == model.OrderStatusPendingAdminConfirmation && status != current.Status {
			if _, err := tx.Exec(ctx, enqueueNotificationQuery,
				current.ClientID, current.ID, model.NotificationOrderReviewed, current.PublicID,
			); err != nil {
				return err
			}
		}

		return nil
	})
}
