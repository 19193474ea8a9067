package queue_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhruvv028/Notifyhub-notification-service/pkg/queue"
)

func newItem(notificationID string, createdAt time.Time) *queue.Item {
	return &queue.Item{
		ID:             uuid.New(),
		NotificationID: notificationID,
		Status:         queue.StatusPending,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}
}

func TestMemoryStorage_CreateItem(t *testing.T) {
	t.Parallel()

	t.Run("creates item successfully", func(t *testing.T) {
		t.Parallel()
		storage := queue.NewMemoryStorage()

		item := newItem("n-1", time.Now())
		require.NoError(t, storage.CreateItem(context.Background(), item))

		stored, err := storage.GetItem(context.Background(), item.ID)
		require.NoError(t, err)
		assert.Equal(t, "n-1", stored.NotificationID)
		assert.Equal(t, queue.StatusPending, stored.Status)
	})

	t.Run("fails on duplicate id", func(t *testing.T) {
		t.Parallel()
		storage := queue.NewMemoryStorage()

		item := newItem("n-1", time.Now())
		require.NoError(t, storage.CreateItem(context.Background(), item))

		err := storage.CreateItem(context.Background(), item)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("fails on nil item", func(t *testing.T) {
		t.Parallel()
		storage := queue.NewMemoryStorage()

		err := storage.CreateItem(context.Background(), nil)
		require.Error(t, err)
	})

	t.Run("stored item is isolated from caller", func(t *testing.T) {
		t.Parallel()
		storage := queue.NewMemoryStorage()

		item := newItem("n-1", time.Now())
		require.NoError(t, storage.CreateItem(context.Background(), item))
		item.Status = queue.StatusFailed

		stored, err := storage.GetItem(context.Background(), item.ID)
		require.NoError(t, err)
		assert.Equal(t, queue.StatusPending, stored.Status)
	})
}

func TestMemoryStorage_GetItem_NotFound(t *testing.T) {
	t.Parallel()
	storage := queue.NewMemoryStorage()

	_, err := storage.GetItem(context.Background(), uuid.New())
	require.ErrorIs(t, err, queue.ErrItemNotFound)
}

func TestMemoryStorage_ClaimOldest(t *testing.T) {
	t.Parallel()

	t.Run("empty storage", func(t *testing.T) {
		t.Parallel()
		storage := queue.NewMemoryStorage()

		_, err := storage.ClaimOldest(context.Background(), time.Now())
		require.ErrorIs(t, err, queue.ErrNoItemToClaim)
	})

	t.Run("oldest first", func(t *testing.T) {
		t.Parallel()
		storage := queue.NewMemoryStorage()
		base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

		// Inserted out of order on purpose.
		require.NoError(t, storage.CreateItem(context.Background(), newItem("second", base.Add(time.Second))))
		require.NoError(t, storage.CreateItem(context.Background(), newItem("first", base)))
		require.NoError(t, storage.CreateItem(context.Background(), newItem("third", base.Add(2*time.Second))))

		var order []string
		for range 3 {
			item, err := storage.ClaimOldest(context.Background(), base.Add(time.Minute))
			require.NoError(t, err)
			assert.Equal(t, queue.StatusProcessing, item.Status)
			assert.Equal(t, base.Add(time.Minute), item.UpdatedAt)
			order = append(order, item.NotificationID)
		}
		assert.Equal(t, []string{"first", "second", "third"}, order)

		_, err := storage.ClaimOldest(context.Background(), base)
		require.ErrorIs(t, err, queue.ErrNoItemToClaim)
	})

	t.Run("equal timestamps fall back to insertion order", func(t *testing.T) {
		t.Parallel()
		storage := queue.NewMemoryStorage()
		at := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

		for _, id := range []string{"a", "b", "c"} {
			require.NoError(t, storage.CreateItem(context.Background(), newItem(id, at)))
		}

		for _, want := range []string{"a", "b", "c"} {
			item, err := storage.ClaimOldest(context.Background(), at)
			require.NoError(t, err)
			assert.Equal(t, want, item.NotificationID)
		}
	})
}

func TestMemoryStorage_ClaimOldest_Concurrent(t *testing.T) {
	t.Parallel()
	storage := queue.NewMemoryStorage()

	const items = 200
	const workers = 16

	now := time.Now()
	for i := range items {
		require.NoError(t, storage.CreateItem(context.Background(), newItem("n", now.Add(time.Duration(i)*time.Millisecond))))
	}

	var (
		mu      sync.Mutex
		claimed = make(map[uuid.UUID]int)
		wg      sync.WaitGroup
	)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				item, err := storage.ClaimOldest(context.Background(), time.Now())
				if err != nil {
					return
				}
				mu.Lock()
				claimed[item.ID]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, claimed, items)
	for id, n := range claimed {
		assert.Equal(t, 1, n, "item %s claimed more than once", id)
	}
}

func TestMemoryStorage_CompleteItem(t *testing.T) {
	t.Parallel()

	t.Run("completes processing item", func(t *testing.T) {
		t.Parallel()
		storage := queue.NewMemoryStorage()
		now := time.Now()

		require.NoError(t, storage.CreateItem(context.Background(), newItem("n", now)))
		claimed, err := storage.ClaimOldest(context.Background(), now)
		require.NoError(t, err)

		done, err := storage.CompleteItem(context.Background(), claimed.ID, now.Add(time.Second))
		require.NoError(t, err)
		assert.Equal(t, queue.StatusCompleted, done.Status)
		assert.Equal(t, now.Add(time.Second), done.UpdatedAt)
		assert.Zero(t, done.RetryCount)
	})

	t.Run("rejects pending item", func(t *testing.T) {
		t.Parallel()
		storage := queue.NewMemoryStorage()

		item := newItem("n", time.Now())
		require.NoError(t, storage.CreateItem(context.Background(), item))

		_, err := storage.CompleteItem(context.Background(), item.ID, time.Now())
		require.ErrorIs(t, err, queue.ErrNotProcessing)
	})

	t.Run("unknown item", func(t *testing.T) {
		t.Parallel()
		storage := queue.NewMemoryStorage()

		_, err := storage.CompleteItem(context.Background(), uuid.New(), time.Now())
		require.ErrorIs(t, err, queue.ErrItemNotFound)
	})
}

func TestMemoryStorage_FailItem(t *testing.T) {
	t.Parallel()

	t.Run("returns to pending under budget", func(t *testing.T) {
		t.Parallel()
		storage := queue.NewMemoryStorage()
		now := time.Now()

		require.NoError(t, storage.CreateItem(context.Background(), newItem("n", now)))
		claimed, err := storage.ClaimOldest(context.Background(), now)
		require.NoError(t, err)

		failed, err := storage.FailItem(context.Background(), claimed.ID, 3, false, now)
		require.NoError(t, err)
		assert.Equal(t, queue.StatusPending, failed.Status)
		assert.Equal(t, 1, failed.RetryCount)
	})

	t.Run("permanent failure skips retries", func(t *testing.T) {
		t.Parallel()
		storage := queue.NewMemoryStorage()
		now := time.Now()

		require.NoError(t, storage.CreateItem(context.Background(), newItem("n", now)))
		claimed, err := storage.ClaimOldest(context.Background(), now)
		require.NoError(t, err)

		failed, err := storage.FailItem(context.Background(), claimed.ID, 3, true, now)
		require.NoError(t, err)
		assert.Equal(t, queue.StatusFailed, failed.Status)
		assert.Equal(t, 1, failed.RetryCount)

		_, err = storage.ClaimOldest(context.Background(), now)
		require.ErrorIs(t, err, queue.ErrNoItemToClaim)
	})

	t.Run("rejects completed item", func(t *testing.T) {
		t.Parallel()
		storage := queue.NewMemoryStorage()
		now := time.Now()

		require.NoError(t, storage.CreateItem(context.Background(), newItem("n", now)))
		claimed, err := storage.ClaimOldest(context.Background(), now)
		require.NoError(t, err)
		_, err = storage.CompleteItem(context.Background(), claimed.ID, now)
		require.NoError(t, err)

		_, err = storage.FailItem(context.Background(), claimed.ID, 3, false, now)
		require.ErrorIs(t, err, queue.ErrNotProcessing)
	})
}

func TestMemoryStorage_DeleteTerminalBefore(t *testing.T) {
	t.Parallel()
	storage := queue.NewMemoryStorage()
	ctx := context.Background()
	cutoff := time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC)

	complete := func(at time.Time) uuid.UUID {
		require.NoError(t, storage.CreateItem(ctx, newItem("n", at)))
		item, err := storage.ClaimOldest(ctx, at)
		require.NoError(t, err)
		_, err = storage.CompleteItem(ctx, item.ID, at)
		require.NoError(t, err)
		return item.ID
	}

	old := complete(cutoff.Add(-time.Microsecond))
	atCutoff := complete(cutoff)

	oldPending := newItem("pending", cutoff.Add(-time.Hour))
	require.NoError(t, storage.CreateItem(ctx, oldPending))

	removed, err := storage.DeleteTerminalBefore(ctx, cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = storage.GetItem(ctx, old)
	require.ErrorIs(t, err, queue.ErrItemNotFound)

	_, err = storage.GetItem(ctx, atCutoff)
	require.NoError(t, err)

	_, err = storage.GetItem(ctx, oldPending.ID)
	require.NoError(t, err)
}

func TestMemoryStorage_ReleaseStale(t *testing.T) {
	t.Parallel()
	storage := queue.NewMemoryStorage()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, storage.CreateItem(ctx, newItem("stale", base)))
	require.NoError(t, storage.CreateItem(ctx, newItem("fresh", base.Add(time.Second))))

	stale, err := storage.ClaimOldest(ctx, base)
	require.NoError(t, err)
	fresh, err := storage.ClaimOldest(ctx, base.Add(10*time.Minute))
	require.NoError(t, err)

	released, err := storage.ReleaseStale(ctx, base.Add(5*time.Minute), 3, base.Add(11*time.Minute))
	require.NoError(t, err)
	require.Len(t, released, 1)
	assert.Equal(t, stale.ID, released[0].ID)
	assert.Equal(t, queue.StatusPending, released[0].Status)
	assert.Equal(t, 1, released[0].RetryCount)

	still, err := storage.GetItem(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, queue.StatusProcessing, still.Status)
}
