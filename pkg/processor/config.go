package processor

import "time"

// Config holds the worker pool and janitor settings.
type Config struct {
	Concurrency   int           `env:"WORKER_CONCURRENCY" envDefault:"4"`
	PollInterval  time.Duration `env:"WORKER_POLL_INTERVAL" envDefault:"5s"`
	SweepHour     int           `env:"JANITOR_SWEEP_HOUR" envDefault:"3"`
	ReapInterval  time.Duration `env:"JANITOR_REAP_INTERVAL" envDefault:"1m"`
	CheckInterval time.Duration `env:"JANITOR_CHECK_INTERVAL" envDefault:"30s"`
}
