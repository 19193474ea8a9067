package processor

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dhruvv028/Notifyhub-notification-service/pkg/logger"
)

// Dispatcher runs one delivery attempt. *Processor implements it.
type Dispatcher interface {
	ProcessOne(ctx context.Context) (Result, error)
}

// Worker drains the queue with a bounded pool of slots. Slots are started on
// every poll tick and on every Trigger call; each slot keeps dispatching until
// the queue is empty.
type Worker struct {
	dispatcher Dispatcher
	workerID   uuid.UUID
	sem        chan struct{}
	wake       chan struct{}
	wg         sync.WaitGroup
	mu         sync.Mutex
	stopMu     sync.Mutex // guards stopping together with wg.Add

	pollInterval time.Duration
	logger       *slog.Logger

	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
	stopping atomic.Bool
}

// NewWorker creates a worker pool around d.
func NewWorker(d Dispatcher, opts ...WorkerOption) (*Worker, error) {
	if d == nil {
		return nil, ErrDispatcherNil
	}

	options := &workerOptions{
		pollInterval: 5 * time.Second,
		concurrency:  1,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	return &Worker{
		dispatcher:   d,
		workerID:     uuid.New(),
		sem:          make(chan struct{}, options.concurrency),
		wake:         make(chan struct{}, 1),
		pollInterval: options.pollInterval,
		logger:       options.logger,
	}, nil
}

// Start begins polling in the background.
func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel != nil {
		return ErrWorkerAlreadyStarted
	}

	w.ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})
	w.stopping.Store(false)

	go w.run()

	w.logger.LogAttrs(ctx, slog.LevelInfo, "worker started",
		logger.WorkerID(w.workerID),
		slog.Int("concurrency", cap(w.sem)),
		slog.Duration("poll_interval", w.pollInterval))

	return nil
}

// Stop cancels polling and waits for in-flight items to finish.
func (w *Worker) Stop() error {
	w.mu.Lock()
	if w.cancel == nil {
		w.mu.Unlock()
		return ErrWorkerNotStarted
	}

	w.stopMu.Lock()
	w.stopping.Store(true)
	w.stopMu.Unlock()

	cancel, done := w.cancel, w.done
	w.cancel = nil
	w.mu.Unlock()

	cancel()
	<-done

	w.logger.Info("worker stopping, waiting for in-flight items", logger.WorkerID(w.workerID))
	w.wg.Wait()
	w.logger.Info("worker stopped", logger.WorkerID(w.workerID))

	return nil
}

// Run starts the worker and returns a function suitable for errgroup.
func (w *Worker) Run(ctx context.Context) func() error {
	return func() error {
		if err := w.Start(ctx); err != nil {
			return err
		}

		<-ctx.Done()

		return w.Stop()
	}
}

// Trigger asks the worker to poll now instead of waiting for the next tick.
// It never blocks; triggers arriving while one is pending are coalesced.
func (w *Worker) Trigger() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// Wake implements notify.Waker so an in-process worker reacts to new notifications.
func (w *Worker) Wake(context.Context) error {
	w.Trigger()
	return nil
}

func (w *Worker) run() {
	defer close(w.done)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			w.fill()
		case <-w.wake:
			w.fill()
		}
	}
}

// fill starts a slot for every free place in the pool.
func (w *Worker) fill() {
	for {
		select {
		case w.sem <- struct{}{}:
			w.stopMu.Lock()
			if w.stopping.Load() {
				w.stopMu.Unlock()
				<-w.sem
				return
			}
			w.wg.Add(1)
			w.stopMu.Unlock()

			go func() {
				defer w.wg.Done()
				defer func() { <-w.sem }()
				w.slot()
			}()
		default:
			return
		}
	}
}

// slot dispatches until the queue is empty or the worker stops. Items run on
// a context detached from the worker so shutdown lets them finish.
func (w *Worker) slot() {
	ctx := context.WithoutCancel(w.ctx)

	for w.ctx.Err() == nil {
		res, err := w.dispatcher.ProcessOne(ctx)
		if err != nil {
			w.logger.LogAttrs(ctx, slog.LevelError, "failed to process queue item",
				logger.WorkerID(w.workerID),
				logger.QueueItemID(res.ItemID),
				logger.NotificationID(res.NotificationID),
				logger.Error(err))
		}
		if !res.Processed {
			return
		}
	}
}

// WorkerInfo returns information about the worker.
func (w *Worker) WorkerInfo() (id string, hostname string, pid int) {
	hostname, _ = os.Hostname()
	return w.workerID.String(), hostname, os.Getpid()
}
