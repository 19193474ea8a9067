package sqlstore

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/dhruvv028/Notifyhub-notification-service/pkg/notify"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/pg"
)

// GetUser implements notify.UserStore.
func (s *Store) GetUser(ctx context.Context, id string) (*notify.User, error) {
	statement, args, err := s.sb.Select("id", "name", "email", "phone").
		From("users").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var u notify.User
	err = s.db.QueryRowContext(ctx, statement, args...).Scan(&u.ID, &u.Name, &u.Email, &u.Phone)
	if pg.IsNotFoundError(err) {
		return nil, fmt.Errorf("%w: %s", notify.ErrUserNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: select user: %w", notify.ErrPersistence, err)
	}

	return &u, nil
}

// CreateUser implements notify.UserStore. An existing user with the same id
// has its contact details replaced.
func (s *Store) CreateUser(ctx context.Context, user notify.User) (*notify.User, error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	statement, args, err := s.sb.Insert("users").
		Columns("id", "name", "email", "phone", "created_at").
		Values(user.ID, user.Name, user.Email, user.Phone, s.timestamp()).
		Suffix("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, email = EXCLUDED.email, phone = EXCLUDED.phone").
		ToSql()
	if err != nil {
		return nil, err
	}

	if _, err := s.db.ExecContext(ctx, statement, args...); err != nil {
		return nil, fmt.Errorf("%w: insert user: %w", notify.ErrPersistence, err)
	}

	return &user, nil
}
