package processor

import "errors"

var (
	ErrQueueNil               = errors.New("queue cannot be nil")
	ErrStoreNil               = errors.New("store cannot be nil")
	ErrSenderNil              = errors.New("sender cannot be nil")
	ErrDispatcherNil          = errors.New("dispatcher cannot be nil")
	ErrWorkerAlreadyStarted   = errors.New("worker already started")
	ErrWorkerNotStarted       = errors.New("worker not started")
	ErrJanitorNotConfigured   = errors.New("janitor has no jobs to run")
	ErrDispatchPanicked       = errors.New("dispatch panicked")
	ErrFailedToSettleItem     = errors.New("failed to settle queue item")
	ErrFailedToUpdateDelivery = errors.New("failed to update notification status")
)
