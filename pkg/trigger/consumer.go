package trigger

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/dhruvv028/Notifyhub-notification-service/pkg/logger"
)

// Drainer processes queue items until none are pending. *processor.Processor implements it.
type Drainer interface {
	Drain(ctx context.Context) (int, error)
}

// Consumer drains the dispatch queue whenever a wake-up arrives. A delivery is
// acked only after the drain it triggered has finished.
type Consumer struct {
	ch       Channel
	queue    string
	prefetch int
	drainer  Drainer
	logger   *slog.Logger
}

// ConsumerOption configures a Consumer.
type ConsumerOption func(*Consumer)

// WithPrefetch limits unacknowledged deliveries held by this consumer.
func WithPrefetch(n int) ConsumerOption {
	return func(c *Consumer) {
		if n > 0 {
			c.prefetch = n
		}
	}
}

// WithConsumerLogger sets the consumer logger.
func WithConsumerLogger(l *slog.Logger) ConsumerOption {
	return func(c *Consumer) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewConsumer declares queue on ch and returns a consumer that feeds d.
func NewConsumer(ch Channel, queue string, d Drainer, opts ...ConsumerOption) (*Consumer, error) {
	if ch == nil {
		return nil, ErrChannelNil
	}
	if d == nil {
		return nil, ErrDrainerNil
	}
	if err := declare(ch, queue); err != nil {
		return nil, err
	}

	c := &Consumer{
		ch:       ch,
		queue:    queue,
		prefetch: 1,
		drainer:  d,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Start consumes wake-ups until ctx is done or the broker closes the channel.
func (c *Consumer) Start(ctx context.Context) error {
	if err := c.ch.Qos(c.prefetch, 0, false); err != nil {
		return errors.Join(ErrConsume, err)
	}

	deliveries, err := c.ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return errors.Join(ErrConsume, err)
	}

	c.logger.LogAttrs(ctx, slog.LevelInfo, "trigger consumer started",
		slog.String("queue", c.queue),
		slog.Int("prefetch", c.prefetch))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return ErrDeliveriesClosed
			}
			c.handle(ctx, d)
		}
	}
}

// Run returns a function suitable for errgroup. Cancellation is a clean exit.
func (c *Consumer) Run(ctx context.Context) func() error {
	return func() error {
		if err := c.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}
}

func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	var msg Message
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		c.logger.LogAttrs(ctx, slog.LevelWarn, "discarding malformed wake-up", logger.Error(err))
		_ = d.Nack(false, false)
		return
	}

	processed, err := c.drainer.Drain(ctx)
	if err != nil {
		c.logger.LogAttrs(ctx, slog.LevelError, "drain triggered by wake-up failed",
			slog.Int("processed", processed),
			slog.String("source", msg.Source),
			logger.Error(err))
		_ = d.Nack(false, true)
		return
	}

	c.logger.LogAttrs(ctx, slog.LevelDebug, "wake-up handled",
		slog.Int("processed", processed),
		slog.String("source", msg.Source))
	_ = d.Ack(false)
}
