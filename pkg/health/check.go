package health

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dhruvv028/Notifyhub-notification-service/pkg/logger"
)

// Check is a named dependency probe.
type Check struct {
	Name string
	Fn   func(context.Context) error
}

// Probe runs every check and joins the failures under ErrNotReady.
func Probe(ctx context.Context, checks ...Check) error {
	var errs []error
	for _, c := range checks {
		if err := c.Fn(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c.Name, err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrNotReady}, errs...)...)
	}
	return nil
}

// Handler serves liveness on /healthz and readiness on /readyz.
//
//   - Liveness always returns 200 OK with body "ALIVE".
//   - Readiness runs every check within timeout. It returns 200 OK with body
//     "READY", or 503 Service Unavailable with body "NOT_READY".
func Handler(log *slog.Logger, timeout time.Duration, checks ...Check) http.Handler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ALIVE"))
	})

	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		if err := Probe(ctx, checks...); err != nil {
			log.LogAttrs(ctx, slog.LevelError, "Readiness check failed", logger.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("NOT_READY"))
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	})

	return mux
}
