package health

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dhruvv028/Notifyhub-notification-service/pkg/logger"
)

// Server exposes the probe handler over HTTP for the lifetime of a context.
type Server struct {
	cfg     Config
	log     *slog.Logger
	handler http.Handler
}

// NewServer returns a probe server for the given checks.
func NewServer(cfg Config, log *slog.Logger, checks ...Check) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Server{
		cfg:     cfg,
		log:     log,
		handler: Handler(log, cfg.CheckTimeout, checks...),
	}
}

// Handler returns the underlying probe handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
// It returns immediately when no address is configured.
func (s *Server) Run(ctx context.Context) error {
	if s.cfg.Addr == "" {
		return nil
	}

	srv := &http.Server{Addr: s.cfg.Addr, Handler: s.handler}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	s.log.LogAttrs(ctx, slog.LevelInfo, "Health server started", slog.String("addr", s.cfg.Addr))

	var runErr error
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.LogAttrs(ctx, slog.LevelError, "Health server shutdown failed", logger.Error(err))
			return errors.Join(ErrShutdown, err)
		}
		runErr = <-errCh
	case runErr = <-errCh:
	}

	if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
		return errors.Join(ErrStart, runErr)
	}
	s.log.LogAttrs(ctx, slog.LevelInfo, "Health server stopped")
	return nil
}
