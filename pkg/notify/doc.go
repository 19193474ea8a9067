// Package notify holds the domain records of the notification service and the
// stores that persist them.
//
// A Notification is created with status queued and moves exactly once to sent,
// failed or skipped. Retries do not create new records: the record stays queued
// while its dispatch queue item is retried. Only NotificationStore.UpdateStatus
// changes status, error message and sent time, keeping the invariants that
// SentAt is set iff the status is sent and ErrorMessage only accompanies failed
// or skipped.
//
// Preferences are created lazily with every channel enabled. GetOrCreateDefault
// must be an atomic insert-or-fetch so concurrent first dispatches for one user
// never create two records.
//
// Manager is the ingress facade. Send stores the record, enqueues it on the
// dispatch queue and optionally wakes the processors:
//
//	store := notify.NewMemoryStorage()
//	q, _ := queue.New(queue.NewMemoryStorage(), queue.WithNotificationLookup(store))
//	m := notify.NewManager(store, q)
//
//	n, err := m.Send(ctx, userID, notify.TypeEmail, "Welcome", "Hello!")
//	// n.Status == notify.StatusQueued
//
// MemoryStorage implements all three store interfaces; pkg/sqlstore provides
// the Postgres implementation.
package notify
