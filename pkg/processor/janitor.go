package processor

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dhruvv028/Notifyhub-notification-service/pkg/logger"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/notify"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/queue"
)

// LeaseExpiredMessage is recorded on a notification whose item ran out of
// retries while stuck in processing.
const LeaseExpiredMessage = "Delivery attempt did not finish"

// MaintenanceQueue is the part of the dispatch queue the janitor drives.
type MaintenanceQueue interface {
	Sweep(ctx context.Context, olderThan time.Duration) (int64, error)
	Reap(ctx context.Context, staleAfter time.Duration) ([]queue.Item, error)
}

// Janitor runs queue maintenance on schedules: the retention sweep and the
// reaping of items abandoned in processing.
type Janitor struct {
	queue         MaintenanceQueue
	notifications notify.NotificationStore
	retention     time.Duration
	leaseTTL      time.Duration
	jobs          []*job
	mu            sync.Mutex
	interval      time.Duration
	waker         notify.Waker
	now           func() time.Time
	logger        *slog.Logger
}

type job struct {
	name     string
	schedule Schedule
	run      func(ctx context.Context) error
	nextRun  time.Time
}

// NewJanitor creates a janitor with the sweep and reap jobs registered.
func NewJanitor(q MaintenanceQueue, notifications notify.NotificationStore, opts ...JanitorOption) (*Janitor, error) {
	if q == nil {
		return nil, ErrQueueNil
	}
	if notifications == nil {
		return nil, ErrStoreNil
	}

	options := &janitorOptions{
		retention:     queue.DefaultRetention,
		leaseTTL:      5 * time.Minute,
		sweepSchedule: DailyAt(3, 0),
		reapSchedule:  EveryInterval(time.Minute),
		checkInterval: 30 * time.Second,
		now:           time.Now,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	j := &Janitor{
		queue:         q,
		notifications: notifications,
		retention:     options.retention,
		leaseTTL:      options.leaseTTL,
		interval:      options.checkInterval,
		waker:         options.waker,
		now:           options.now,
		logger:        options.logger,
	}

	if options.sweepSchedule != nil {
		j.jobs = append(j.jobs, &job{name: "sweep", schedule: options.sweepSchedule, run: func(ctx context.Context) error {
			_, err := j.Sweep(ctx)
			return err
		}})
	}
	if options.reapSchedule != nil {
		j.jobs = append(j.jobs, &job{name: "reap", schedule: options.reapSchedule, run: func(ctx context.Context) error {
			_, err := j.Reap(ctx)
			return err
		}})
	}

	return j, nil
}

// Start runs due jobs every check interval until ctx is done.
func (j *Janitor) Start(ctx context.Context) error {
	if len(j.jobs) == 0 {
		return ErrJanitorNotConfigured
	}

	now := j.now()
	j.mu.Lock()
	for _, jb := range j.jobs {
		jb.nextRun = jb.schedule.Next(now)
		j.logger.LogAttrs(ctx, slog.LevelInfo, "janitor job scheduled",
			slog.String("job", jb.name),
			slog.String("schedule", jb.schedule.String()),
			slog.Time("next_run", jb.nextRun))
	}
	j.mu.Unlock()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Info("janitor shutting down")
			return ctx.Err()
		case <-ticker.C:
			j.runDue(ctx)
		}
	}
}

// Run returns a function suitable for errgroup. Cancellation is a clean exit.
func (j *Janitor) Run(ctx context.Context) func() error {
	return func() error {
		if err := j.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}
}

func (j *Janitor) runDue(ctx context.Context) {
	now := j.now()

	j.mu.Lock()
	var due []*job
	for _, jb := range j.jobs {
		if !jb.nextRun.After(now) {
			due = append(due, jb)
			jb.nextRun = jb.schedule.Next(now)
		}
	}
	j.mu.Unlock()

	for _, jb := range due {
		if err := jb.run(ctx); err != nil {
			j.logger.LogAttrs(ctx, slog.LevelError, "janitor job failed",
				slog.String("job", jb.name),
				logger.Error(err))
		}
	}
}

// Sweep removes terminal queue items older than the retention horizon.
func (j *Janitor) Sweep(ctx context.Context) (int64, error) {
	return j.queue.Sweep(ctx, j.retention)
}

// Reap returns stale processing items to the queue. Items that exhausted
// their retries on the way get their notification marked failed, unless the
// attempt already recorded it as sent before dying.
func (j *Janitor) Reap(ctx context.Context) ([]queue.Item, error) {
	items, err := j.queue.Reap(ctx, j.leaseTTL)
	if err != nil {
		return nil, err
	}

	var (
		errs     []error
		released bool
	)
	for _, item := range items {
		if item.Status != queue.StatusFailed {
			released = true
			continue
		}
		if err := j.expire(ctx, item.NotificationID); err != nil {
			errs = append(errs, err)
		}
	}

	if released && j.waker != nil {
		if err := j.waker.Wake(ctx); err != nil {
			j.logger.LogAttrs(ctx, slog.LevelWarn, "failed to wake workers after reap", logger.Error(err))
		}
	}

	return items, errors.Join(errs...)
}

func (j *Janitor) expire(ctx context.Context, notificationID string) error {
	n, err := j.notifications.Get(ctx, notificationID)
	if errors.Is(err, notify.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if n.Status == notify.StatusSent {
		j.logger.LogAttrs(ctx, slog.LevelInfo, "reaped item was already delivered",
			logger.NotificationID(n.ID))
		return nil
	}

	err = j.notifications.UpdateStatus(ctx, notificationID, notify.StatusFailed, LeaseExpiredMessage)
	if err != nil && !errors.Is(err, notify.ErrNotFound) {
		return err
	}
	return nil
}
