package queue

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStorage implements Repository for testing and local development
type MemoryStorage struct {
	mu    sync.Mutex
	items map[uuid.UUID]*Item
	seq   map[uuid.UUID]uint64
	next  uint64

	// Index for efficient queries
	byStatus map[Status][]uuid.UUID
}

// NewMemoryStorage creates a new in-memory storage implementation
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		items:    make(map[uuid.UUID]*Item),
		seq:      make(map[uuid.UUID]uint64),
		byStatus: make(map[Status][]uuid.UUID),
	}
}

// CreateItem implements Repository
func (ms *MemoryStorage) CreateItem(ctx context.Context, item *Item) error {
	if item == nil {
		return errors.New("queue item cannot be nil")
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, exists := ms.items[item.ID]; exists {
		return fmt.Errorf("queue item with ID %s already exists", item.ID)
	}

	// Clone item to prevent external modifications
	itemCopy := *item
	ms.items[item.ID] = &itemCopy
	ms.next++
	ms.seq[item.ID] = ms.next
	ms.byStatus[item.Status] = append(ms.byStatus[item.Status], item.ID)

	return nil
}

// GetItem implements Repository
func (ms *MemoryStorage) GetItem(ctx context.Context, id uuid.UUID) (*Item, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	item, exists := ms.items[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}

	itemCopy := *item
	return &itemCopy, nil
}

// ClaimOldest implements Repository.
// Selection and the status flip happen under one lock, so concurrent claimants
// never receive the same item.
func (ms *MemoryStorage) ClaimOldest(ctx context.Context, now time.Time) (*Item, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	var oldest *Item
	for _, id := range ms.byStatus[StatusPending] {
		item := ms.items[id]
		if oldest == nil || ms.before(item, oldest) {
			oldest = item
		}
	}

	if oldest == nil {
		return nil, ErrNoItemToClaim
	}

	ms.move(oldest, StatusProcessing)
	oldest.UpdatedAt = now

	itemCopy := *oldest
	return &itemCopy, nil
}

// CompleteItem implements Repository
func (ms *MemoryStorage) CompleteItem(ctx context.Context, id uuid.UUID, now time.Time) (*Item, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	item, err := ms.processing(id)
	if err != nil {
		return nil, err
	}

	ms.move(item, StatusCompleted)
	item.UpdatedAt = now

	itemCopy := *item
	return &itemCopy, nil
}

// FailItem implements Repository
func (ms *MemoryStorage) FailItem(ctx context.Context, id uuid.UUID, maxRetries int, permanent bool, now time.Time) (*Item, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	item, err := ms.processing(id)
	if err != nil {
		return nil, err
	}

	ms.fail(item, maxRetries, permanent, now)

	itemCopy := *item
	return &itemCopy, nil
}

// DeleteTerminalBefore implements Repository
func (ms *MemoryStorage) DeleteTerminalBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	var removed int64
	for id, item := range ms.items {
		if !item.Status.Terminal() || !item.UpdatedAt.Before(cutoff) {
			continue
		}
		ms.removeFromStatusIndex(id, item.Status)
		delete(ms.items, id)
		delete(ms.seq, id)
		removed++
	}

	return removed, nil
}

// ReleaseStale implements Repository
func (ms *MemoryStorage) ReleaseStale(ctx context.Context, staleBefore time.Time, maxRetries int, now time.Time) ([]Item, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	var released []Item
	for _, id := range slices.Clone(ms.byStatus[StatusProcessing]) {
		item := ms.items[id]
		if !item.UpdatedAt.Before(staleBefore) {
			continue
		}
		ms.fail(item, maxRetries, false, now)
		released = append(released, *item)
	}

	return released, nil
}

// Helper methods

func (ms *MemoryStorage) processing(id uuid.UUID) (*Item, error) {
	item, exists := ms.items[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	if item.Status != StatusProcessing {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotProcessing, id, item.Status)
	}
	return item, nil
}

func (ms *MemoryStorage) fail(item *Item, maxRetries int, permanent bool, now time.Time) {
	item.RetryCount++
	item.UpdatedAt = now
	if permanent || item.RetryCount >= maxRetries {
		ms.move(item, StatusFailed)
		return
	}
	ms.move(item, StatusPending)
}

// before orders items by creation time, falling back to insertion order on ties
func (ms *MemoryStorage) before(a, b *Item) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return ms.seq[a.ID] < ms.seq[b.ID]
}

func (ms *MemoryStorage) move(item *Item, to Status) {
	ms.removeFromStatusIndex(item.ID, item.Status)
	item.Status = to
	ms.byStatus[to] = append(ms.byStatus[to], item.ID)
}

func (ms *MemoryStorage) removeFromStatusIndex(id uuid.UUID, status Status) {
	ms.byStatus[status] = slices.DeleteFunc(ms.byStatus[status], func(other uuid.UUID) bool {
		return other == id
	})
}
