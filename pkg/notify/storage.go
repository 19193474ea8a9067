package notify

import (
	"context"
	"time"
)

// NotificationStore persists notification records.
// UpdateStatus is the only way to change status, error message and sent time.
type NotificationStore interface {
	// Create stores a new notification with status queued.
	Create(ctx context.Context, userID string, typ Type, title, content string) (*Notification, error)

	// Get returns the notification or ErrNotFound.
	Get(ctx context.Context, id string) (*Notification, error)

	// ListByUser returns the user's notifications in creation order.
	ListByUser(ctx context.Context, userID string) ([]Notification, error)

	// UpdateStatus changes the status of a notification. Status sent stamps
	// the sent time; errorMessage is kept only for failed and skipped.
	UpdateStatus(ctx context.Context, id string, status Status, errorMessage string) error

	// HasDelivered reports whether another in-app notification with the same
	// user, title and content was sent at or after since.
	HasDelivered(ctx context.Context, n *Notification, since time.Time) (bool, error)
}

// PreferenceStore persists per-user channel preferences.
type PreferenceStore interface {
	// GetOrCreateDefault returns the user's preference, creating the default one
	// atomically if none exists.
	GetOrCreateDefault(ctx context.Context, userID string) (*Preference, error)

	// UpdatePreference stores the channel flags of pref.UserID.
	UpdatePreference(ctx context.Context, pref Preference) (*Preference, error)
}

// UserStore resolves notification recipients.
type UserStore interface {
	// GetUser returns the user or ErrNotFound.
	GetUser(ctx context.Context, id string) (*User, error)

	// CreateUser stores a user. The id is generated when empty.
	CreateUser(ctx context.Context, user User) (*User, error)
}
