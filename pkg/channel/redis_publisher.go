package channel

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/dhruvv028/Notifyhub-notification-service/pkg/notify"
)

// RedisClient is the subset of redis.UniversalClient used for publishing.
type RedisClient interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// RedisPublisher publishes in-app notifications on a per-user pub/sub channel
// named "<prefix>:<user id>".
type RedisPublisher struct {
	client RedisClient
	prefix string
}

// NewRedisPublisher creates a publisher. An empty prefix defaults to "notifications".
func NewRedisPublisher(client RedisClient, prefix string) *RedisPublisher {
	if prefix == "" {
		prefix = "notifications"
	}
	return &RedisPublisher{client: client, prefix: prefix}
}

// Channel returns the pub/sub channel of a user.
func (p *RedisPublisher) Channel(userID string) string {
	return p.prefix + ":" + userID
}

// Publish implements Publisher. Having no subscribers is not an error.
func (p *RedisPublisher) Publish(ctx context.Context, n *notify.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to encode notification %s: %w", n.ID, err)
	}

	if err := p.client.Publish(ctx, p.Channel(n.UserID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish notification %s: %w", n.ID, err)
	}
	return nil
}
