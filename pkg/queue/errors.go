package queue

import "errors"

var (
	// ErrRepositoryNil is returned when a nil repository is provided
	ErrRepositoryNil = errors.New("repository cannot be nil")

	// ErrNotificationNotFound is returned by Enqueue when the referenced notification does not exist
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrItemNotFound is returned when a queue item does not exist
	ErrItemNotFound = errors.New("queue item not found")

	// ErrNoItemToClaim is returned by ClaimNext when no pending item exists
	ErrNoItemToClaim = errors.New("no pending queue item to claim")

	// ErrNotProcessing is returned when completing or failing an item that is not claimed
	ErrNotProcessing = errors.New("queue item is not in processing state")

	// ErrInvalidNotificationID is returned when enqueueing an empty notification id
	ErrInvalidNotificationID = errors.New("notification id cannot be empty")

	// ErrFailedToClaimItem is returned when the storage claim fails
	ErrFailedToClaimItem = errors.New("failed to claim queue item")

	// ErrFailedToUpdateItem is returned when a status transition cannot be persisted
	ErrFailedToUpdateItem = errors.New("failed to update queue item")
)
