package redis

import "errors"

var (
	// ErrDisabled is returned by Connect when no REDIS_URL is configured.
	ErrDisabled   = errors.New("redis fan-out disabled: no connection URL")
	ErrInvalidURL = errors.New("invalid redis connection URL")
	ErrNotReady   = errors.New("redis did not answer within the connect timeout")
	ErrUnhealthy  = errors.New("redis healthcheck failed")
)
