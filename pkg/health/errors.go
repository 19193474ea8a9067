package health

import "errors"

var (
	// ErrStart indicates that the probe server failed to start.
	ErrStart = errors.New("failed to start health server")
	// ErrShutdown indicates that graceful shutdown failed.
	ErrShutdown = errors.New("failed to shutdown health server gracefully")
	// ErrNotReady indicates that at least one dependency check failed.
	ErrNotReady = errors.New("service not ready")
)
