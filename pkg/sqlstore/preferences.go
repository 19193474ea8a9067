package sqlstore

import (
	"context"
	"fmt"

	"github.com/dhruvv028/Notifyhub-notification-service/pkg/notify"
)

const preferenceColumns = "user_id, email_enabled, sms_enabled, in_app_enabled, created_at, updated_at"

// GetOrCreateDefault implements notify.PreferenceStore. The no-op upsert makes
// concurrent first reads converge on a single row and always return it.
func (s *Store) GetOrCreateDefault(ctx context.Context, userID string) (*notify.Preference, error) {
	if userID == "" {
		return nil, notify.ErrUserIDRequired
	}

	def := notify.DefaultPreference(userID, s.timestamp())
	statement, args, err := s.sb.Insert("notification_preferences").
		Columns("user_id", "email_enabled", "sms_enabled", "in_app_enabled", "created_at", "updated_at").
		Values(def.UserID, def.EmailEnabled, def.SMSEnabled, def.InAppEnabled, def.CreatedAt, def.UpdatedAt).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id RETURNING " + preferenceColumns).
		ToSql()
	if err != nil {
		return nil, err
	}

	return s.scanPreference(ctx, statement, args)
}

// UpdatePreference implements notify.PreferenceStore.
func (s *Store) UpdatePreference(ctx context.Context, pref notify.Preference) (*notify.Preference, error) {
	if pref.UserID == "" {
		return nil, notify.ErrUserIDRequired
	}

	now := s.timestamp()
	statement, args, err := s.sb.Insert("notification_preferences").
		Columns("user_id", "email_enabled", "sms_enabled", "in_app_enabled", "created_at", "updated_at").
		Values(pref.UserID, pref.EmailEnabled, pref.SMSEnabled, pref.InAppEnabled, now, now).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET " +
			"email_enabled = EXCLUDED.email_enabled, " +
			"sms_enabled = EXCLUDED.sms_enabled, " +
			"in_app_enabled = EXCLUDED.in_app_enabled, " +
			"updated_at = EXCLUDED.updated_at " +
			"RETURNING " + preferenceColumns).
		ToSql()
	if err != nil {
		return nil, err
	}

	return s.scanPreference(ctx, statement, args)
}

func (s *Store) scanPreference(ctx context.Context, statement string, args []any) (*notify.Preference, error) {
	var p notify.Preference
	err := s.db.QueryRowContext(ctx, statement, args...).
		Scan(&p.UserID, &p.EmailEnabled, &p.SMSEnabled, &p.InAppEnabled, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: upsert preference: %w", notify.ErrPersistence, err)
	}
	return &p, nil
}
