package processor

import (
	"log/slog"
	"time"

	"github.com/dhruvv028/Notifyhub-notification-service/pkg/notify"
)

// JanitorOption is a functional option for configuring a janitor
type JanitorOption func(*janitorOptions)

type janitorOptions struct {
	retention     time.Duration
	leaseTTL      time.Duration
	sweepSchedule Schedule
	reapSchedule  Schedule
	checkInterval time.Duration
	waker         notify.Waker
	now           func() time.Time
	logger        *slog.Logger
}

// WithRetention sets how long terminal items are kept
func WithRetention(d time.Duration) JanitorOption {
	return func(o *janitorOptions) {
		if d > 0 {
			o.retention = d
		}
	}
}

// WithLeaseTTL sets how long an item may stay in processing before it is reaped
func WithLeaseTTL(d time.Duration) JanitorOption {
	return func(o *janitorOptions) {
		if d > 0 {
			o.leaseTTL = d
		}
	}
}

// WithSweepSchedule sets when the retention sweep runs. Nil disables it.
func WithSweepSchedule(s Schedule) JanitorOption {
	return func(o *janitorOptions) {
		o.sweepSchedule = s
	}
}

// WithReapSchedule sets when stale items are reaped. Nil disables it.
func WithReapSchedule(s Schedule) JanitorOption {
	return func(o *janitorOptions) {
		o.reapSchedule = s
	}
}

// WithCheckInterval sets how often the janitor checks for due jobs
func WithCheckInterval(d time.Duration) JanitorOption {
	return func(o *janitorOptions) {
		if d > 0 {
			o.checkInterval = d
		}
	}
}

// WithJanitorClock overrides the time source used for scheduling
func WithJanitorClock(now func() time.Time) JanitorOption {
	return func(o *janitorOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithJanitorLogger sets the logger for the janitor
func WithJanitorLogger(logger *slog.Logger) JanitorOption {
	return func(o *janitorOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithJanitorWaker wakes w after a reap returned items to pending
func WithJanitorWaker(w notify.Waker) JanitorOption {
	return func(o *janitorOptions) {
		o.waker = w
	}
}
