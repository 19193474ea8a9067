package trigger

import "errors"

var (
	ErrEmptyURL         = errors.New("amqp url is empty")
	ErrBrokerNotReady   = errors.New("amqp broker did not accept the connection")
	ErrChannelNil       = errors.New("amqp channel cannot be nil")
	ErrDrainerNil       = errors.New("drainer cannot be nil")
	ErrQueueDeclare     = errors.New("failed to declare trigger queue")
	ErrPublish          = errors.New("failed to publish wake-up")
	ErrConsume          = errors.New("failed to register consumer")
	ErrDeliveriesClosed = errors.New("amqp delivery channel closed")
)
