package channel

import (
	"context"
	"sync"

	"github.com/dhruvv028/Notifyhub-notification-service/pkg/notify"
)

// MemoryPublisher fans in-app notifications out to in-process subscribers.
// Slow subscribers miss messages instead of blocking the processor.
type MemoryPublisher struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan notify.Notification]struct{} // userID -> subscriber channels
	bufferSize  int
}

// NewMemoryPublisher creates a publisher with the given per-subscriber buffer (minimum 1).
func NewMemoryPublisher(bufferSize int) *MemoryPublisher {
	return &MemoryPublisher{
		subscribers: make(map[string]map[chan notify.Notification]struct{}),
		bufferSize:  max(bufferSize, 1),
	}
}

// Subscribe returns a channel receiving the user's notifications until ctx is done.
func (p *MemoryPublisher) Subscribe(ctx context.Context, userID string) <-chan notify.Notification {
	ch := make(chan notify.Notification, p.bufferSize)

	p.mu.Lock()
	if p.subscribers[userID] == nil {
		p.subscribers[userID] = make(map[chan notify.Notification]struct{})
	}
	p.subscribers[userID][ch] = struct{}{}
	p.mu.Unlock()

	go func() {
		<-ctx.Done()
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.subscribers[userID], ch)
		if len(p.subscribers[userID]) == 0 {
			delete(p.subscribers, userID)
		}
		close(ch)
	}()

	return ch
}

// Publish implements Publisher.
func (p *MemoryPublisher) Publish(ctx context.Context, n *notify.Notification) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for ch := range p.subscribers[n.UserID] {
		select {
		case ch <- *n:
		default:
		}
	}
	return nil
}
