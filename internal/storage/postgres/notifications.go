package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/ahmedmubarak14/poconfirm/internal/domain/model"
)

// SelectBatchForDispatch claims pending outbox entries: rows are locked,
// stamped dispatched, and returned in one transaction, so a concurrent
// poller never hands the same entry to two workers.
func (r *notificationRepository) SelectBatchForDispatch(ctx context.Context, limit int) ([]model.Notification, error) {
	const selectQuery = `SELECT id, user_id, order_id, kind, payload, created_at
                         FROM notifications
                         WHERE dispatched_at IS NULL
                         ORDER BY created_at
                         LIMIT $1
                         FOR UPDATE SKIP LOCKED`

	var batch []model.Notification
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var n model.Notification
			if err := rows.Scan(&n.ID, &n.UserID, &n.OrderID, &n.Kind, &n.Payload, &n.CreatedAt); err != nil {
				return err
			}
			batch = append(batch, n)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		for i := range batch {
			if _, err := tx.Exec(ctx, `UPDATE notifications SET dispatched_at=NOW() WHERE id=$1`, batch[i].ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}
