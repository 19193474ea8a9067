package trigger

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Message is the body of a wake-up. Consumers only need to know that work exists.
type Message struct {
	Source string    `json:"source"`
	SentAt time.Time `json:"sent_at"`
}

// Publisher announces new queue items over AMQP. It implements notify.Waker.
type Publisher struct {
	ch     Channel
	queue  string
	source string
	now    func() time.Time
	logger *slog.Logger
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithSource tags published messages, typically with the hostname.
func WithSource(source string) PublisherOption {
	return func(p *Publisher) {
		p.source = source
	}
}

// WithPublisherLogger sets the publisher logger.
func WithPublisherLogger(l *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPublisher declares queue on ch and returns a publisher for it.
func NewPublisher(ch Channel, queue string, opts ...PublisherOption) (*Publisher, error) {
	if ch == nil {
		return nil, ErrChannelNil
	}
	if err := declare(ch, queue); err != nil {
		return nil, err
	}

	p := &Publisher{
		ch:     ch,
		queue:  queue,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Wake publishes a persistent wake-up message to the trigger queue.
func (p *Publisher) Wake(ctx context.Context) error {
	msg := Message{Source: p.source, SentAt: p.now().UTC()}
	body, err := json.Marshal(msg)
	if err != nil {
		return errors.Join(ErrPublish, err)
	}

	err = p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    msg.SentAt,
	})
	if err != nil {
		return errors.Join(ErrPublish, err)
	}

	p.logger.LogAttrs(ctx, slog.LevelDebug, "wake-up published", slog.String("queue", p.queue))
	return nil
}
