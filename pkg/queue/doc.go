// Package queue provides the durable dispatch queue of the notification service.
//
// Each Item references one notification and records one dispatch attempt lineage:
//
//	pending -> processing -> completed
//	                      -> pending (retry, retry_count+1)
//	                      -> failed  (retry budget exhausted or permanent failure)
//
// The Queue type owns retry bookkeeping and delegates persistence to a Repository.
// A Repository must implement ClaimOldest as a single atomic operation so that two
// concurrent workers never claim the same item. MemoryStorage does so under a mutex;
// the Postgres repository in pkg/sqlstore uses FOR UPDATE SKIP LOCKED.
//
// # Usage
//
//	q, err := queue.New(queue.NewMemoryStorage(),
//	    queue.WithMaxRetries(3),
//	    queue.WithNotificationLookup(store),
//	)
//	if err != nil {
//	    return err
//	}
//
//	item, err := q.Enqueue(ctx, notificationID)
//	...
//	claimed, err := q.ClaimNext(ctx)
//	if errors.Is(err, queue.ErrNoItemToClaim) {
//	    return nil
//	}
//	...
//	_ = q.Complete(ctx, claimed)
//
// # Retention and recovery
//
// Sweep removes completed and failed items older than a horizon (7 days by default).
// Reap returns items stuck in processing past a lease timeout to pending, counting
// the lost attempt against the retry budget.
package queue
