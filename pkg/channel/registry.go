package channel

import (
	"context"
	"sync"

	"github.com/dhruvv028/Notifyhub-notification-service/pkg/notify"
)

// Registry dispatches to the Sender registered for the notification type.
// It is itself a Sender.
type Registry struct {
	mu      sync.RWMutex
	senders map[notify.Type]Sender
}

// NewRegistry creates an empty dispatch table.
func NewRegistry() *Registry {
	return &Registry{senders: make(map[notify.Type]Sender)}
}

// Register sets the sender for t, replacing any previous one.
func (r *Registry) Register(t notify.Type, s Sender) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.senders[t] = s
	return r
}

// Lookup returns the sender registered for t.
func (r *Registry) Lookup(t notify.Type) (Sender, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.senders[t]
	return s, ok
}

// Send routes n to its channel. Unregistered types are rejected permanently.
func (r *Registry) Send(ctx context.Context, user *notify.User, n *notify.Notification) Outcome {
	s, ok := r.Lookup(n.Type)
	if !ok {
		return Rejected("Unknown notification type: "+string(n.Type), notify.ErrInvalidType)
	}
	return s.Send(ctx, user, n)
}
