package logger

import (
	"fmt"
	"log/slog"
	"strings"
)

// Config overrides the environment preset. Empty fields keep the preset value.
type Config struct {
	Level  string `env:"LOG_LEVEL"`  // debug, info, warn or error
	Format string `env:"LOG_FORMAT"` // json or text
}

// Options converts the config into logger options.
func (c Config) Options() ([]Option, error) {
	var opts []Option
	if c.Level != "" {
		l, err := ParseLevel(c.Level)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithLevel(l))
	}
	if c.Format != "" {
		f := Format(strings.ToLower(c.Format))
		if f != FormatJSON && f != FormatText {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, c.Format)
		}
		opts = append(opts, WithFormat(f))
	}
	return opts, nil
}

// ParseLevel accepts the slog level names in any case, plus "warning".
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
}
