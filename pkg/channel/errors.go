package channel

import (
	"errors"
	"fmt"

	"github.com/dhruvv028/Notifyhub-notification-service/pkg/notify"
)

var (
	ErrInvalidConfig = errors.New("invalid channel configuration")

	ErrMissingEmail   = fmt.Errorf("%w: user has no email address", notify.ErrValidation)
	ErrInvalidEmail   = fmt.Errorf("%w: invalid email address", notify.ErrValidation)
	ErrMissingPhone   = fmt.Errorf("%w: user has no phone number", notify.ErrValidation)
	ErrSendTimeout    = fmt.Errorf("%w: send timed out", notify.ErrTransport)
	ErrCircuitOpen    = fmt.Errorf("%w: channel circuit breaker is open", notify.ErrTransport)
	ErrSenderPanicked = fmt.Errorf("%w: sender panicked", notify.ErrTransport)
)
