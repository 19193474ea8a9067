package channel

import (
	"context"
	"errors"

	"github.com/sony/gobreaker"

	"github.com/dhruvv028/Notifyhub-notification-service/pkg/notify"
)

// NewBreaker creates a circuit breaker for one channel.
func NewBreaker(name string, cfg BreakerConfig) *gobreaker.CircuitBreaker {
	threshold := max(cfg.FailureThreshold, 1)
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
	})
}

// WithBreaker guards next with cb. Only transport failures count against the
// breaker; while it is open sends fail fast with a retryable outcome.
func WithBreaker(next Sender, cb *gobreaker.CircuitBreaker) Sender {
	return SenderFunc(func(ctx context.Context, user *notify.User, n *notify.Notification) Outcome {
		res, err := cb.Execute(func() (interface{}, error) {
			out := next.Send(ctx, user, n)
			if !out.OK && errors.Is(out.Err, notify.ErrTransport) {
				return out, out.Err
			}
			return out, nil
		})

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return Failed(errors.Join(ErrCircuitOpen, err))
		}
		return res.(Outcome)
	})
}
