package health

import "time"

type Config struct {
	Addr            string        `env:"HEALTH_ADDR" envDefault:":8081"`          // Addr is the probe listener address; empty disables the server.
	CheckTimeout    time.Duration `env:"HEALTH_CHECK_TIMEOUT" envDefault:"2s"`    // CheckTimeout bounds a single readiness probe.
	ShutdownTimeout time.Duration `env:"HEALTH_SHUTDOWN_TIMEOUT" envDefault:"5s"` // ShutdownTimeout is the time allowed for graceful shutdown.
}
