package notify

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dhruvv028/Notifyhub-notification-service/pkg/logger"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/queue"
)

// Enqueuer schedules a dispatch attempt for a stored notification.
type Enqueuer interface {
	Enqueue(ctx context.Context, notificationID string) (*queue.Item, error)
}

// Waker nudges the processors after new work was enqueued.
type Waker interface {
	Wake(ctx context.Context) error
}

// Manager is the ingress and query facade of the dispatch core.
type Manager struct {
	store  NotificationStore
	queue  Enqueuer
	waker  Waker
	logger *slog.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithManagerLogger sets the logger for the Manager.
func WithManagerLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithWaker makes Send notify processors after each enqueue.
func WithWaker(w Waker) ManagerOption {
	return func(m *Manager) {
		m.waker = w
	}
}

// NewManager creates a new notification manager.
func NewManager(store NotificationStore, q Enqueuer, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:  store,
		queue:  q,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Send stores a queued notification and enqueues its first dispatch attempt.
// Channel problems never surface here. If the record was stored but the
// enqueue failed, the queued record is returned together with ErrEnqueueFailed.
func (m *Manager) Send(ctx context.Context, userID string, typ Type, title, content string) (*Notification, error) {
	n, err := m.store.Create(ctx, userID, typ, title, content)
	if err != nil {
		return nil, err
	}

	if _, err := m.queue.Enqueue(ctx, n.ID); err != nil {
		m.logger.LogAttrs(ctx, slog.LevelError, "notification stored but not enqueued",
			logger.NotificationID(n.ID),
			logger.UserID(n.UserID),
			logger.Error(err),
		)
		return n, errors.Join(ErrEnqueueFailed, err)
	}

	// Wake-up is best effort: pollers pick the item up anyway.
	if m.waker != nil {
		if err := m.waker.Wake(ctx); err != nil {
			m.logger.LogAttrs(ctx, slog.LevelWarn, "failed to wake processors",
				logger.NotificationID(n.ID),
				logger.Error(err),
			)
		}
	}

	return n, nil
}

func (m *Manager) Get(ctx context.Context, id string) (*Notification, error) {
	return m.store.Get(ctx, id)
}

func (m *Manager) ListByUser(ctx context.Context, userID string) ([]Notification, error) {
	return m.store.ListByUser(ctx, userID)
}
