package channel

import (
	"context"
	"fmt"
	"time"

	"github.com/dhruvv028/Notifyhub-notification-service/pkg/notify"
)

// WithTimeout bounds every send to d. A sender that overruns, even one that
// ignores its context, yields a retryable failure. d <= 0 disables the bound.
func WithTimeout(next Sender, d time.Duration) Sender {
	if d <= 0 {
		return next
	}

	return SenderFunc(func(ctx context.Context, user *notify.User, n *notify.Notification) Outcome {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()

		done := make(chan Outcome, 1)
		go func() {
			defer func() {
				if r := recover(); r != nil {
					done <- Failed(fmt.Errorf("%w: %v", ErrSenderPanicked, r))
				}
			}()
			done <- next.Send(ctx, user, n)
		}()

		select {
		case out := <-done:
			return out
		case <-ctx.Done():
			return Failed(fmt.Errorf("%w after %s: %w", ErrSendTimeout, d, ctx.Err()))
		}
	})
}
