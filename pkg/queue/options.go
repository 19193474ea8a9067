package queue

import (
	"log/slog"
	"time"
)

// Option is a functional option for configuring a Queue
type Option func(*queueOptions)

type queueOptions struct {
	maxRetries int
	lookup     NotificationLookup
	now        func() time.Time
	logger     *slog.Logger
}

// WithMaxRetries sets the retry budget (1-10)
// Capped at 10 to prevent endless redelivery of a broken notification
func WithMaxRetries(maxRetries int) Option {
	return func(o *queueOptions) {
		if maxRetries >= 1 && maxRetries <= 10 {
			o.maxRetries = maxRetries
		}
	}
}

// WithNotificationLookup makes Enqueue verify that the notification exists
func WithNotificationLookup(lookup NotificationLookup) Option {
	return func(o *queueOptions) {
		o.lookup = lookup
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(o *queueOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogger sets the logger for the queue
func WithLogger(logger *slog.Logger) Option {
	return func(o *queueOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}
