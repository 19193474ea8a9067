package processor_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dhruvv028/Notifyhub-notification-service/pkg/channel"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/notify"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/processor"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/queue"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	store *notify.MemoryStorage
	queue *queue.Queue
	proc  *processor.Processor
	sends atomic.Int32
}

// newFixture wires a processor over in-memory storage. The sender counts its calls.
func newFixture(t *testing.T, sender channel.Sender) *fixture {
	t.Helper()
	return newFixtureWithStore(t, sender, nil)
}

// newFixtureWithStore lets wrap replace the notification store seen by the processor.
func newFixtureWithStore(t *testing.T, sender channel.Sender, wrap func(*notify.MemoryStorage) notify.NotificationStore) *fixture {
	t.Helper()

	f := &fixture{store: notify.NewMemoryStorage()}
	var notifications notify.NotificationStore = f.store
	if wrap != nil {
		notifications = wrap(f.store)
	}

	q, err := queue.New(queue.NewMemoryStorage(), queue.WithLogger(discardLogger()))
	require.NoError(t, err)
	f.queue = q

	counted := channel.SenderFunc(func(ctx context.Context, user *notify.User, n *notify.Notification) channel.Outcome {
		f.sends.Add(1)
		return sender.Send(ctx, user, n)
	})

	p, err := processor.New(q, notifications, f.store, f.store, counted, processor.WithLogger(discardLogger()))
	require.NoError(t, err)
	f.proc = p

	return f
}

// submit stores a user and a notification for them, then enqueues it.
func (f *fixture) submit(t *testing.T, user notify.User, typ notify.Type) (*notify.Notification, *queue.Item) {
	t.Helper()
	ctx := context.Background()

	_, err := f.store.CreateUser(ctx, user)
	require.NoError(t, err)

	n, err := f.store.Create(ctx, user.ID, typ, "Welcome", "Hello there")
	require.NoError(t, err)

	item, err := f.queue.Enqueue(ctx, n.ID)
	require.NoError(t, err)

	return n, item
}

func delivered() channel.Sender {
	return channel.SenderFunc(func(context.Context, *notify.User, *notify.Notification) channel.Outcome {
		return channel.Delivered("ok")
	})
}

// failingStatusStore rejects every status write.
type failingStatusStore struct {
	notify.NotificationStore
}

func (failingStatusStore) UpdateStatus(context.Context, string, notify.Status, string) error {
	return errors.Join(notify.ErrPersistence, errors.New("disk full"))
}
