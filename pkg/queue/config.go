package queue

import "time"

// Config holds the configuration for the dispatch queue
type Config struct {
	MaxRetries int           `env:"QUEUE_MAX_RETRIES" envDefault:"3"`
	Retention  time.Duration `env:"QUEUE_RETENTION" envDefault:"168h"`
	LeaseTTL   time.Duration `env:"QUEUE_LEASE_TTL" envDefault:"5m"`
}
