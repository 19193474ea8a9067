package sqlstore

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/dhruvv028/Notifyhub-notification-service/pkg/pg"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/queue"
)

const itemColumns = "id, notification_id, status, retry_count, created_at, updated_at"

func scanItem(row interface{ Scan(...any) error }) (*queue.Item, error) {
	var (
		item   queue.Item
		status string
	)
	if err := row.Scan(&item.ID, &item.NotificationID, &status, &item.RetryCount, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	item.Status = queue.Status(status)
	return &item, nil
}

// failedStatus computes the status of an item whose retry count is being
// incremented. Postgres evaluates it against the pre-update row.
func failedStatus(maxRetries int, permanent bool) any {
	if permanent {
		return string(queue.StatusFailed)
	}
	return sq.Expr("CASE WHEN retry_count + 1 >= ? THEN ? ELSE ? END",
		maxRetries, string(queue.StatusFailed), string(queue.StatusPending))
}

// CreateItem implements queue.Repository.
func (s *Store) CreateItem(ctx context.Context, item *queue.Item) error {
	if item == nil {
		return fmt.Errorf("%w: nil item", queue.ErrFailedToUpdateItem)
	}
	if _, err := uuid.Parse(item.NotificationID); err != nil {
		return fmt.Errorf("%w: %s", queue.ErrNotificationNotFound, item.NotificationID)
	}

	statement, args, err := s.sb.Insert("queue_items").
		Columns("id", "notification_id", "status", "retry_count", "created_at", "updated_at").
		Values(item.ID, item.NotificationID, string(item.Status), item.RetryCount, item.CreatedAt, item.UpdatedAt).
		ToSql()
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, statement, args...)
	switch {
	case pg.IsForeignKeyViolationError(err):
		return fmt.Errorf("%w: %s", queue.ErrNotificationNotFound, item.NotificationID)
	case pg.IsDuplicateKeyError(err):
		return fmt.Errorf("queue item with ID %s already exists: %w", item.ID, err)
	case err != nil:
		return fmt.Errorf("insert queue item: %w", err)
	}

	return nil
}

// GetItem implements queue.Repository.
func (s *Store) GetItem(ctx context.Context, id uuid.UUID) (*queue.Item, error) {
	statement, args, err := s.sb.Select(itemColumns).
		From("queue_items").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	item, err := scanItem(s.db.QueryRowContext(ctx, statement, args...))
	if pg.IsNotFoundError(err) {
		return nil, fmt.Errorf("%w: %s", queue.ErrItemNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("select queue item: %w", err)
	}

	return item, nil
}

// ClaimOldest implements queue.Repository. SKIP LOCKED lets concurrent
// claimants pass over a row another transaction is flipping.
func (s *Store) ClaimOldest(ctx context.Context, now time.Time) (*queue.Item, error) {
	oldest := sq.Select("id").
		From("queue_items").
		Where(sq.Eq{"status": string(queue.StatusPending)}).
		OrderBy("created_at", "seq").
		Limit(1).
		Suffix("FOR UPDATE SKIP LOCKED")

	statement, args, err := s.sb.Update("queue_items").
		Set("status", string(queue.StatusProcessing)).
		Set("updated_at", now).
		Where(sq.Expr("id = (?)", oldest)).
		Suffix("RETURNING " + itemColumns).
		ToSql()
	if err != nil {
		return nil, err
	}

	item, err := scanItem(s.db.QueryRowContext(ctx, statement, args...))
	if pg.IsNotFoundError(err) {
		return nil, queue.ErrNoItemToClaim
	}
	if err != nil {
		return nil, fmt.Errorf("claim queue item: %w", err)
	}

	return item, nil
}

// CompleteItem implements queue.Repository.
func (s *Store) CompleteItem(ctx context.Context, id uuid.UUID, now time.Time) (*queue.Item, error) {
	return s.transition(ctx, id, s.sb.Update("queue_items").
		Set("status", string(queue.StatusCompleted)).
		Set("updated_at", now))
}

// FailItem implements queue.Repository.
func (s *Store) FailItem(ctx context.Context, id uuid.UUID, maxRetries int, permanent bool, now time.Time) (*queue.Item, error) {
	return s.transition(ctx, id, s.sb.Update("queue_items").
		Set("retry_count", sq.Expr("retry_count + 1")).
		Set("status", failedStatus(maxRetries, permanent)).
		Set("updated_at", now))
}

// transition applies update to a processing item. When no row matches it tells
// a missing item apart from one in another state.
func (s *Store) transition(ctx context.Context, id uuid.UUID, update sq.UpdateBuilder) (*queue.Item, error) {
	statement, args, err := update.
		Where(sq.Eq{"id": id, "status": string(queue.StatusProcessing)}).
		Suffix("RETURNING " + itemColumns).
		ToSql()
	if err != nil {
		return nil, err
	}

	item, err := scanItem(s.db.QueryRowContext(ctx, statement, args...))
	if pg.IsNotFoundError(err) {
		current, getErr := s.GetItem(ctx, id)
		if getErr != nil {
			return nil, getErr
		}
		return nil, fmt.Errorf("%w: %s is %s", queue.ErrNotProcessing, id, current.Status)
	}
	if err != nil {
		return nil, fmt.Errorf("update queue item: %w", err)
	}

	return item, nil
}

// DeleteTerminalBefore implements queue.Repository.
func (s *Store) DeleteTerminalBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	statement, args, err := s.sb.Delete("queue_items").
		Where(sq.Eq{"status": []string{string(queue.StatusCompleted), string(queue.StatusFailed)}}).
		Where(sq.Lt{"updated_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx, statement, args...)
	if err != nil {
		return 0, fmt.Errorf("delete queue items: %w", err)
	}

	return res.RowsAffected()
}

// ReleaseStale implements queue.Repository.
func (s *Store) ReleaseStale(ctx context.Context, staleBefore time.Time, maxRetries int, now time.Time) ([]queue.Item, error) {
	statement, args, err := s.sb.Update("queue_items").
		Set("retry_count", sq.Expr("retry_count + 1")).
		Set("status", failedStatus(maxRetries, false)).
		Set("updated_at", now).
		Where(sq.Eq{"status": string(queue.StatusProcessing)}).
		Where(sq.Lt{"updated_at": staleBefore}).
		Suffix("RETURNING " + itemColumns).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, statement, args...)
	if err != nil {
		return nil, fmt.Errorf("release stale queue items: %w", err)
	}
	defer rows.Close()

	var released []queue.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan queue item: %w", err)
		}
		released = append(released, *item)
	}

	return released, rows.Err()
}
