package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Repository defines the persistence operations of the dispatch queue.
// Every method must be a single atomic storage operation.
type Repository interface {
	// CreateItem stores a new queue item
	CreateItem(ctx context.Context, item *Item) error

	// GetItem returns the item with the given id or ErrItemNotFound
	GetItem(ctx context.Context, id uuid.UUID) (*Item, error)

	// ClaimOldest flips the oldest pending item to processing and returns it,
	// or ErrNoItemToClaim if nothing is pending
	ClaimOldest(ctx context.Context, now time.Time) (*Item, error)

	// CompleteItem moves a processing item to completed
	CompleteItem(ctx context.Context, id uuid.UUID, now time.Time) (*Item, error)

	// FailItem increments the retry count of a processing item and moves it to
	// failed when permanent or when the budget is exhausted, otherwise back to pending
	FailItem(ctx context.Context, id uuid.UUID, maxRetries int, permanent bool, now time.Time) (*Item, error)

	// DeleteTerminalBefore removes completed and failed items updated before cutoff
	DeleteTerminalBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// ReleaseStale applies FailItem semantics to processing items updated before staleBefore
	ReleaseStale(ctx context.Context, staleBefore time.Time, maxRetries int, now time.Time) ([]Item, error)
}

// NotificationLookup reports whether a notification exists. Enqueue uses it to
// reject items that reference missing records.
type NotificationLookup interface {
	NotificationExists(ctx context.Context, id string) (bool, error)
}

// Queue is the durable, FIFO backlog of dispatch attempts.
// It owns retry bookkeeping; storage is delegated to a Repository.
type Queue struct {
	repo       Repository
	lookup     NotificationLookup
	maxRetries int
	now        func() time.Time
	logger     *slog.Logger
}

// New creates a dispatch queue on top of the given repository
func New(repo Repository, opts ...Option) (*Queue, error) {
	if repo == nil {
		return nil, ErrRepositoryNil
	}

	options := &queueOptions{
		maxRetries: DefaultMaxRetries,
		now:        time.Now,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(options)
	}

	return &Queue{
		repo:       repo,
		lookup:     options.lookup,
		maxRetries: options.maxRetries,
		now:        options.now,
		logger:     options.logger,
	}, nil
}

// MaxRetries returns the retry budget applied by Fail and Reap
func (q *Queue) MaxRetries() int {
	return q.maxRetries
}

// Enqueue creates a pending item for the notification. There is no dedup:
// enqueueing the same notification twice yields two items.
func (q *Queue) Enqueue(ctx context.Context, notificationID string) (*Item, error) {
	if notificationID == "" {
		return nil, ErrInvalidNotificationID
	}

	if q.lookup != nil {
		exists, err := q.lookup.NotificationExists(ctx, notificationID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up notification %s: %w", notificationID, err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: %s", ErrNotificationNotFound, notificationID)
		}
	}

	now := q.now()
	item := &Item{
		ID:             uuid.New(),
		NotificationID: notificationID,
		Status:         StatusPending,
		RetryCount:     0,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := q.repo.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to enqueue notification %s: %w", notificationID, err)
	}

	q.logger.LogAttrs(ctx, slog.LevelDebug, "notification enqueued",
		slog.String("queue_item_id", item.ID.String()),
		slog.String("notification_id", notificationID))

	return item, nil
}

// ClaimNext atomically claims the oldest pending item.
// It returns ErrNoItemToClaim when the queue has nothing pending.
func (q *Queue) ClaimNext(ctx context.Context) (*Item, error) {
	item, err := q.repo.ClaimOldest(ctx, q.now())
	if err != nil {
		if errors.Is(err, ErrNoItemToClaim) {
			return nil, err
		}
		return nil, errors.Join(ErrFailedToClaimItem, err)
	}
	return item, nil
}

// Complete marks a claimed item as completed
func (q *Queue) Complete(ctx context.Context, item *Item) error {
	updated, err := q.repo.CompleteItem(ctx, item.ID, q.now())
	if err != nil {
		return errors.Join(ErrFailedToUpdateItem, err)
	}
	*item = *updated
	return nil
}

// Fail records a failed attempt for a claimed item.
// The item returns to pending unless permanent is set or the retry budget is exhausted.
func (q *Queue) Fail(ctx context.Context, item *Item, permanent bool) error {
	updated, err := q.repo.FailItem(ctx, item.ID, q.maxRetries, permanent, q.now())
	if err != nil {
		return errors.Join(ErrFailedToUpdateItem, err)
	}
	*item = *updated

	if item.Status == StatusFailed {
		q.logger.LogAttrs(ctx, slog.LevelWarn, "queue item permanently failed",
			slog.String("queue_item_id", item.ID.String()),
			slog.String("notification_id", item.NotificationID),
			slog.Int("retry_count", item.RetryCount),
			slog.Bool("permanent", permanent))
	}
	return nil
}

// Sweep removes terminal items whose last update predates now-olderThan.
// Items updated exactly at the cutoff are kept.
func (q *Queue) Sweep(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		olderThan = DefaultRetention
	}

	cutoff := q.now().Add(-olderThan)
	removed, err := q.repo.DeleteTerminalBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep queue items before %s: %w", cutoff.Format(time.RFC3339), err)
	}

	q.logger.LogAttrs(ctx, slog.LevelInfo, "swept old queue items",
		slog.Int64("removed", removed),
		slog.Time("cutoff", cutoff))

	return removed, nil
}

// Reap releases items stuck in processing for longer than staleAfter, which
// happens when a worker crashes mid-dispatch. A reaped item counts as a failed attempt.
func (q *Queue) Reap(ctx context.Context, staleAfter time.Duration) ([]Item, error) {
	now := q.now()
	items, err := q.repo.ReleaseStale(ctx, now.Add(-staleAfter), q.maxRetries, now)
	if err != nil {
		return nil, fmt.Errorf("failed to release stale queue items: %w", err)
	}

	for _, item := range items {
		q.logger.LogAttrs(ctx, slog.LevelWarn, "released stale queue item",
			slog.String("queue_item_id", item.ID.String()),
			slog.String("notification_id", item.NotificationID),
			slog.String("status", string(item.Status)),
			slog.Int("retry_count", item.RetryCount))
	}

	return items, nil
}

// Get returns a queue item by id
func (q *Queue) Get(ctx context.Context, id uuid.UUID) (*Item, error) {
	return q.repo.GetItem(ctx, id)
}
