package processor_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhruvv028/Notifyhub-notification-service/pkg/notify"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/processor"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/queue"
)

// fakeDispatcher hands out a fixed number of items and tracks parallelism.
type fakeDispatcher struct {
	pending     atomic.Int32
	processed   atomic.Int32
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	delay       time.Duration
}

func (d *fakeDispatcher) ProcessOne(ctx context.Context) (processor.Result, error) {
	if d.pending.Add(-1) < 0 {
		d.pending.Add(1)
		return processor.Result{}, nil
	}

	cur := d.inFlight.Add(1)
	for {
		peak := d.maxInFlight.Load()
		if cur <= peak || d.maxInFlight.CompareAndSwap(peak, cur) {
			break
		}
	}

	time.Sleep(d.delay)

	d.inFlight.Add(-1)
	d.processed.Add(1)
	return processor.Result{Processed: true, Status: queue.StatusCompleted}, nil
}

func TestWorker_NewWorker(t *testing.T) {
	t.Parallel()

	_, err := processor.NewWorker(nil)
	assert.ErrorIs(t, err, processor.ErrDispatcherNil)

	w, err := processor.NewWorker(&fakeDispatcher{})
	require.NoError(t, err)

	var waker notify.Waker = w
	assert.NoError(t, waker.Wake(context.Background()))

	id, _, pid := w.WorkerInfo()
	assert.NotEmpty(t, id)
	assert.Positive(t, pid)
}

func TestWorker_StartStop(t *testing.T) {
	t.Parallel()

	w, err := processor.NewWorker(&fakeDispatcher{}, processor.WithWorkerLogger(discardLogger()))
	require.NoError(t, err)

	assert.ErrorIs(t, w.Stop(), processor.ErrWorkerNotStarted)

	require.NoError(t, w.Start(context.Background()))
	assert.ErrorIs(t, w.Start(context.Background()), processor.ErrWorkerAlreadyStarted)

	require.NoError(t, w.Stop())
	assert.ErrorIs(t, w.Stop(), processor.ErrWorkerNotStarted)
}

func TestWorker_TriggerDrainsWithinConcurrency(t *testing.T) {
	t.Parallel()

	d := &fakeDispatcher{delay: 5 * time.Millisecond}
	d.pending.Store(12)

	w, err := processor.NewWorker(d,
		processor.WithConcurrency(3),
		processor.WithPollInterval(time.Hour),
		processor.WithWorkerLogger(discardLogger()))
	require.NoError(t, err)

	require.NoError(t, w.Start(context.Background()))
	t.Cleanup(func() { _ = w.Stop() })

	w.Trigger()

	assert.Eventually(t, func() bool { return d.processed.Load() == 12 }, 2*time.Second, 5*time.Millisecond)
	assert.LessOrEqual(t, d.maxInFlight.Load(), int32(3))
}

func TestWorker_PollsOnInterval(t *testing.T) {
	t.Parallel()

	d := &fakeDispatcher{}
	w, err := processor.NewWorker(d,
		processor.WithPollInterval(10*time.Millisecond),
		processor.WithWorkerLogger(discardLogger()))
	require.NoError(t, err)

	require.NoError(t, w.Start(context.Background()))
	t.Cleanup(func() { _ = w.Stop() })

	d.pending.Store(2)
	assert.Eventually(t, func() bool { return d.processed.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestWorker_StopWaitsForInFlightItem(t *testing.T) {
	t.Parallel()

	d := &fakeDispatcher{delay: 50 * time.Millisecond}
	d.pending.Store(1)

	w, err := processor.NewWorker(d, processor.WithPollInterval(time.Hour), processor.WithWorkerLogger(discardLogger()))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	w.Trigger()
	require.Eventually(t, func() bool { return d.inFlight.Load() == 1 }, time.Second, time.Millisecond)

	require.NoError(t, w.Stop())
	assert.Equal(t, int32(1), d.processed.Load())
}

func TestWorker_Run(t *testing.T) {
	t.Parallel()

	w, err := processor.NewWorker(&fakeDispatcher{}, processor.WithWorkerLogger(discardLogger()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx)() }()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
