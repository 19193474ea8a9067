package notify

import (
	"errors"
	"fmt"
)

// Error taxonomy of the dispatch core. Concrete errors wrap one of these and
// are checked with errors.Is.
var (
	// ErrNotFound is returned when a referenced notification, user or preference does not exist
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned for an unknown notification type or a missing required field
	ErrValidation = errors.New("validation failed")

	// ErrTransport is returned when a channel send fails
	ErrTransport = errors.New("transport failure")

	// ErrPersistence is returned when a store read or write fails
	ErrPersistence = errors.New("persistence failure")
)

var (
	ErrNotificationNotFound = fmt.Errorf("notification %w", ErrNotFound)
	ErrUserNotFound         = fmt.Errorf("user %w", ErrNotFound)
	ErrInvalidType          = fmt.Errorf("%w: unknown notification type", ErrValidation)
	ErrInvalidStatus        = fmt.Errorf("%w: unknown notification status", ErrValidation)
	ErrUserIDRequired       = fmt.Errorf("%w: user id is required", ErrValidation)
	ErrEnqueueFailed        = errors.New("notification stored but could not be enqueued")
)
