package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/dhruvv028/Notifyhub-notification-service/pkg/notify"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/pg"
)

const notificationColumns = "id, user_id, type, title, content, status, error_message, sent_at, created_at, updated_at"

func scanNotification(row interface{ Scan(...any) error }) (*notify.Notification, error) {
	var (
		n       notify.Notification
		errMsg  sql.NullString
		sentAt  sql.NullTime
		typ, st string
	)
	if err := row.Scan(&n.ID, &n.UserID, &typ, &n.Title, &n.Content, &st, &errMsg, &sentAt, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	n.Type = notify.Type(typ)
	n.Status = notify.Status(st)
	n.ErrorMessage = errMsg.String
	if sentAt.Valid {
		t := sentAt.Time
		n.SentAt = &t
	}
	return &n, nil
}

// Create implements notify.NotificationStore.
func (s *Store) Create(ctx context.Context, userID string, typ notify.Type, title, content string) (*notify.Notification, error) {
	if userID == "" {
		return nil, notify.ErrUserIDRequired
	}
	if !typ.Valid() {
		return nil, notify.ErrInvalidType
	}

	now := s.timestamp()
	n := &notify.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Content:   content,
		Status:    notify.StatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}

	statement, args, err := s.sb.Insert("notifications").
		Columns("id", "user_id", "type", "title", "content", "status", "created_at", "updated_at").
		Values(n.ID, n.UserID, string(n.Type), n.Title, n.Content, string(n.Status), n.CreatedAt, n.UpdatedAt).
		ToSql()
	if err != nil {
		return nil, err
	}

	if _, err := s.db.ExecContext(ctx, statement, args...); err != nil {
		return nil, fmt.Errorf("%w: insert notification: %w", notify.ErrPersistence, err)
	}

	return n, nil
}

// Get implements notify.NotificationStore.
func (s *Store) Get(ctx context.Context, id string) (*notify.Notification, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %s", notify.ErrNotificationNotFound, id)
	}

	statement, args, err := s.sb.Select(notificationColumns).
		From("notifications").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	n, err := scanNotification(s.db.QueryRowContext(ctx, statement, args...))
	if pg.IsNotFoundError(err) {
		return nil, fmt.Errorf("%w: %s", notify.ErrNotificationNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: select notification: %w", notify.ErrPersistence, err)
	}

	return n, nil
}

// NotificationExists implements queue.NotificationLookup.
func (s *Store) NotificationExists(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}

	statement, args, err := s.sb.Select("1").
		From("notifications").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, err
	}

	var one int
	err = s.db.QueryRowContext(ctx, statement, args...).Scan(&one)
	if pg.IsNotFoundError(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: lookup notification: %w", notify.ErrPersistence, err)
	}

	return true, nil
}

// ListByUser implements notify.NotificationStore.
func (s *Store) ListByUser(ctx context.Context, userID string) ([]notify.Notification, error) {
	statement, args, err := s.sb.Select(notificationColumns).
		From("notifications").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("seq").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, statement, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list notifications: %w", notify.ErrPersistence, err)
	}
	defer rows.Close()

	var out []notify.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan notification: %w", notify.ErrPersistence, err)
		}
		out = append(out, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list notifications: %w", notify.ErrPersistence, err)
	}

	return out, nil
}

// UpdateStatus implements notify.NotificationStore.
func (s *Store) UpdateStatus(ctx context.Context, id string, status notify.Status, errorMessage string) error {
	if !status.Valid() {
		return notify.ErrInvalidStatus
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", notify.ErrNotificationNotFound, id)
	}

	now := s.timestamp()
	var (
		sentAt *time.Time
		msg    string
	)
	switch status {
	case notify.StatusSent:
		sentAt = &now
	case notify.StatusFailed, notify.StatusSkipped:
		msg = errorMessage
	}

	statement, args, err := s.sb.Update("notifications").
		Set("status", string(status)).
		Set("error_message", nullString(msg)).
		Set("sent_at", nullTime(sentAt)).
		Set("updated_at", now).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, statement, args...)
	if err != nil {
		return fmt.Errorf("%w: update notification: %w", notify.ErrPersistence, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: update notification: %w", notify.ErrPersistence, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", notify.ErrNotificationNotFound, id)
	}

	return nil
}

// HasDelivered implements notify.NotificationStore. The notification itself is
// excluded, so only an earlier delivery of the same message counts.
func (s *Store) HasDelivered(ctx context.Context, n *notify.Notification, since time.Time) (bool, error) {
	statement, args, err := s.sb.Select("1").
		From("notifications").
		Where(sq.Eq{
			"user_id": n.UserID,
			"type":    string(notify.TypeInApp),
			"status":  string(notify.StatusSent),
			"title":   n.Title,
			"content": n.Content,
		}).
		Where(sq.NotEq{"id": n.ID}).
		Where(sq.GtOrEq{"created_at": since}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, err
	}

	var one int
	err = s.db.QueryRowContext(ctx, statement, args...).Scan(&one)
	if pg.IsNotFoundError(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: check delivery: %w", notify.ErrPersistence, err)
	}

	return true, nil
}
