package channel

import (
	"context"

	"github.com/dhruvv028/Notifyhub-notification-service/pkg/notify"
)

// Sender delivers a notification to a user over one channel.
// Implementations report problems through the Outcome, never by panicking.
type Sender interface {
	Send(ctx context.Context, user *notify.User, n *notify.Notification) Outcome
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(ctx context.Context, user *notify.User, n *notify.Notification) Outcome

func (f SenderFunc) Send(ctx context.Context, user *notify.User, n *notify.Notification) Outcome {
	return f(ctx, user, n)
}

// Outcome is the result of one delivery attempt.
// Detail is what gets recorded on the notification when the attempt fails.
type Outcome struct {
	OK        bool
	Detail    string
	Err       error
	Permanent bool // retrying cannot succeed
}

// Delivered reports a successful attempt.
func Delivered(detail string) Outcome {
	return Outcome{OK: true, Detail: detail}
}

// Failed reports a retryable failure.
func Failed(err error) Outcome {
	return Outcome{Detail: err.Error(), Err: err}
}

// Rejected reports a failure that must not be retried.
func Rejected(detail string, err error) Outcome {
	return Outcome{Detail: detail, Err: err, Permanent: true}
}
