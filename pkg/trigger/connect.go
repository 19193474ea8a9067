package trigger

import (
	"context"
	"errors"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the subset of *amqp.Channel used by Publisher and Consumer.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Qos(prefetchCount, prefetchSize int, global bool) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// Connect dials the broker, retrying up to cfg.RetryAttempts times.
func Connect(ctx context.Context, cfg Config) (*amqp.Connection, error) {
	if !cfg.Enabled() {
		return nil, ErrEmptyURL
	}

	var lastErr error
	for i := range max(cfg.RetryAttempts, 1) {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, errors.Join(ErrBrokerNotReady, ctx.Err())
			case <-time.After(cfg.RetryInterval):
			}
		}

		conn, err := amqp.Dial(cfg.URL)
		if err == nil {
			return conn, nil
		}
		lastErr = err
	}

	return nil, errors.Join(ErrBrokerNotReady, lastErr)
}

// declare creates the durable trigger queue if it does not exist.
func declare(ch Channel, queue string) error {
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return errors.Join(ErrQueueDeclare, err)
	}
	return nil
}
