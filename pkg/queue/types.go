package queue

import (
	"time"

	"github.com/google/uuid"
)

// DefaultMaxRetries is the number of failed dispatch attempts after which an item
// is permanently failed.
const DefaultMaxRetries = 3

// DefaultRetention is how long terminal items are kept before Sweep removes them.
const DefaultRetention = 7 * 24 * time.Hour

// Status represents the status of a queue item
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Terminal reports whether no further processing happens without a re-enqueue.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Item is one dispatch attempt lineage for a notification.
type Item struct {
	ID             uuid.UUID `json:"id"`
	NotificationID string    `json:"notification_id"`
	Status         Status    `json:"status"`
	RetryCount     int       `json:"retry_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Exhausted reports whether the item has used up the retry budget.
func (i Item) Exhausted(maxRetries int) bool {
	return i.RetryCount >= maxRetries
}
