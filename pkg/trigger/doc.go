// Package trigger carries dispatch wake-ups over AMQP (RabbitMQ).
//
// Publisher implements notify.Waker: after a notification is enqueued the
// manager publishes a persistent message to a durable queue. Consumer receives
// those messages with manual acknowledgement, drains the dispatch queue and acks
// once the drain has finished, so a crash mid-drain redelivers the wake-up.
// Messages carry no notification data; the database queue stays the source of
// truth and workers still poll when the broker is unavailable.
package trigger
