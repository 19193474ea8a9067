package channel

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dhruvv028/Notifyhub-notification-service/pkg/logger"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/notify"
)

// DeliveryChecker reports earlier deliveries of an identical in-app notification.
// notify.NotificationStore satisfies it.
type DeliveryChecker interface {
	HasDelivered(ctx context.Context, n *notify.Notification, since time.Time) (bool, error)
}

// Publisher pushes an in-app notification to connected clients.
type Publisher interface {
	Publish(ctx context.Context, n *notify.Notification) error
}

// InAppSender confirms in-app notifications. The record itself is the delivery;
// an optional Publisher fans it out in real time.
type InAppSender struct {
	checker   DeliveryChecker
	publisher Publisher
	now       func() time.Time
	logger    *slog.Logger
}

// InAppOption configures an InAppSender.
type InAppOption func(*InAppSender)

// WithPublisher enables realtime fan-out.
func WithPublisher(p Publisher) InAppOption {
	return func(s *InAppSender) {
		s.publisher = p
	}
}

// WithInAppClock overrides the time source used for the same-day window.
func WithInAppClock(now func() time.Time) InAppOption {
	return func(s *InAppSender) {
		if now != nil {
			s.now = now
		}
	}
}

// WithInAppLogger sets the logger for the sender.
func WithInAppLogger(l *slog.Logger) InAppOption {
	return func(s *InAppSender) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewInAppSender creates the in-app channel.
func NewInAppSender(checker DeliveryChecker, opts ...InAppOption) *InAppSender {
	s := &InAppSender{
		checker: checker,
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send implements Sender. An identical notification already delivered today
// counts as success without publishing again.
func (s *InAppSender) Send(ctx context.Context, user *notify.User, n *notify.Notification) Outcome {
	dup, err := s.checker.HasDelivered(ctx, n, notify.StartOfDay(s.now().UTC()))
	if err != nil {
		return Failed(errors.Join(notify.ErrPersistence, err))
	}
	if dup {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "in-app notification already delivered today",
			logger.NotificationID(n.ID),
			logger.UserID(user.ID),
		)
		return Delivered("already delivered today")
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, n); err != nil {
			return Failed(errors.Join(notify.ErrTransport, err))
		}
	}

	return Delivered("in-app notification recorded")
}
