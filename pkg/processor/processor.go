package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dhruvv028/Notifyhub-notification-service/pkg/channel"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/logger"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/notify"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/queue"
)

// Queue is the part of the dispatch queue the processor drives.
type Queue interface {
	ClaimNext(ctx context.Context) (*queue.Item, error)
	Complete(ctx context.Context, item *queue.Item) error
	Fail(ctx context.Context, item *queue.Item, permanent bool) error
}

// Result describes one ProcessOne call.
type Result struct {
	Processed      bool
	ItemID         uuid.UUID
	NotificationID string
	Status         queue.Status // item status after the attempt
}

// Processor runs the delivery lifecycle of claimed queue items.
type Processor struct {
	queue         Queue
	notifications notify.NotificationStore
	users         notify.UserStore
	preferences   notify.PreferenceStore
	sender        channel.Sender
	logger        *slog.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the processor logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a processor. The sender is usually a channel.Registry wrapped
// with channel.WithTimeout.
func New(q Queue, notifications notify.NotificationStore, users notify.UserStore, preferences notify.PreferenceStore, sender channel.Sender, opts ...Option) (*Processor, error) {
	if q == nil {
		return nil, ErrQueueNil
	}
	if notifications == nil || users == nil || preferences == nil {
		return nil, ErrStoreNil
	}
	if sender == nil {
		return nil, ErrSenderNil
	}

	p := &Processor{
		queue:         q,
		notifications: notifications,
		users:         users,
		preferences:   preferences,
		sender:        sender,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// ProcessOne claims the oldest pending item and runs one delivery attempt for it.
// An empty queue yields Result{Processed: false} and no error.
func (p *Processor) ProcessOne(ctx context.Context) (Result, error) {
	item, err := p.queue.ClaimNext(ctx)
	if errors.Is(err, queue.ErrNoItemToClaim) {
		return Result{}, nil
	}
	if err != nil {
		return Result{}, err
	}

	start := time.Now()
	err = p.handle(ctx, item)

	p.logger.LogAttrs(ctx, slog.LevelDebug, "queue item processed",
		logger.QueueItemID(item.ID),
		logger.NotificationID(item.NotificationID),
		logger.Status(string(item.Status)),
		logger.RetryCount(item.RetryCount),
		logger.Duration(time.Since(start)),
		logger.Error(err))

	return Result{
		Processed:      true,
		ItemID:         item.ID,
		NotificationID: item.NotificationID,
		Status:         item.Status,
	}, err
}

// Drain processes items until the queue is empty and returns how many were handled.
// Cancellation is checked only between items; an item in flight always finishes.
func (p *Processor) Drain(ctx context.Context) (int, error) {
	detached := context.WithoutCancel(ctx)

	var processed int
	for {
		if err := ctx.Err(); err != nil {
			return processed, err
		}

		res, err := p.ProcessOne(detached)
		if res.Processed {
			processed++
		}
		if err != nil {
			p.logger.LogAttrs(ctx, slog.LevelError, "queue item attempt failed",
				logger.QueueItemID(res.ItemID),
				logger.NotificationID(res.NotificationID),
				logger.Error(err))
			if !res.Processed {
				return processed, err
			}
		}
		if !res.Processed {
			return processed, nil
		}
	}
}

// handle runs the attempt and turns any fault, including a panic, into a
// retryable failure of the item.
func (p *Processor) handle(ctx context.Context, item *queue.Item) (err error) {
	ctx = logger.WithContextAttrs(ctx, logger.QueueItemID(item.ID), logger.NotificationID(item.NotificationID))

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrDispatchPanicked, r)
		}
		if err != nil {
			err = p.requeue(ctx, item, err)
		}
	}()

	return p.dispatch(ctx, item)
}

func (p *Processor) dispatch(ctx context.Context, item *queue.Item) error {
	n, err := p.notifications.Get(ctx, item.NotificationID)
	if errors.Is(err, notify.ErrNotFound) {
		p.logger.LogAttrs(ctx, slog.LevelWarn, "queued notification no longer exists")
		return p.settle(ctx, item, false, true)
	}
	if err != nil {
		return err
	}

	user, err := p.users.GetUser(ctx, n.UserID)
	if errors.Is(err, notify.ErrNotFound) {
		if err := p.record(ctx, n, notify.StatusFailed, "User not found"); err != nil {
			return err
		}
		return p.settle(ctx, item, false, false)
	}
	if err != nil {
		return err
	}

	pref, err := p.preferences.GetOrCreateDefault(ctx, n.UserID)
	if err != nil {
		return err
	}

	if !pref.IsEnabled(n.Type) {
		if err := p.record(ctx, n, notify.StatusSkipped, notify.DisabledMessage(n.Type)); err != nil {
			return err
		}
		return p.settle(ctx, item, true, false)
	}

	out := p.sender.Send(ctx, user, n)
	if out.OK {
		if err := p.record(ctx, n, notify.StatusSent, ""); err != nil {
			return err
		}
		p.logger.LogAttrs(ctx, slog.LevelInfo, "notification sent",
			logger.UserID(n.UserID),
			logger.Channel(string(n.Type)),
			slog.String("detail", out.Detail))
		return p.settle(ctx, item, true, false)
	}

	p.logger.LogAttrs(ctx, slog.LevelWarn, "notification delivery failed",
		logger.UserID(n.UserID),
		logger.Channel(string(n.Type)),
		logger.RetryCount(item.RetryCount),
		slog.Bool("permanent", out.Permanent),
		logger.Error(out.Err))

	if err := p.record(ctx, n, notify.StatusFailed, out.Detail); err != nil {
		return err
	}
	return p.settle(ctx, item, false, out.Permanent)
}

func (p *Processor) record(ctx context.Context, n *notify.Notification, status notify.Status, detail string) error {
	if err := p.notifications.UpdateStatus(ctx, n.ID, status, detail); err != nil {
		return errors.Join(ErrFailedToUpdateDelivery, err)
	}
	return nil
}

func (p *Processor) settle(ctx context.Context, item *queue.Item, ok, permanent bool) error {
	var err error
	if ok {
		err = p.queue.Complete(ctx, item)
	} else {
		err = p.queue.Fail(ctx, item, permanent)
	}
	if err != nil {
		return errors.Join(ErrFailedToSettleItem, err)
	}
	return nil
}

// requeue puts an item back to pending after a fault. When that write fails
// too the item stays processing until the janitor reaps it.
func (p *Processor) requeue(ctx context.Context, item *queue.Item, cause error) error {
	p.logger.LogAttrs(ctx, slog.LevelError, "dispatch fault, requeueing item", logger.Error(cause))

	if item.Status != queue.StatusProcessing {
		return cause
	}
	if err := p.queue.Fail(ctx, item, false); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}
