package health_test

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhruvv028/Notifyhub-notification-service/pkg/health"
)

func ok(context.Context) error { return nil }

func down(context.Context) error { return errors.New("connection refused") }

func TestProbe(t *testing.T) {
	t.Parallel()

	require.NoError(t, health.Probe(context.Background()))
	require.NoError(t, health.Probe(context.Background(), health.Check{Name: "postgres", Fn: ok}))

	err := health.Probe(context.Background(),
		health.Check{Name: "postgres", Fn: ok},
		health.Check{Name: "redis", Fn: down},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, health.ErrNotReady)
	assert.Contains(t, err.Error(), "redis: connection refused")
	assert.NotContains(t, err.Error(), "postgres")
}

func TestHandler(t *testing.T) {
	t.Parallel()

	log := slog.New(slog.DiscardHandler)

	tests := []struct {
		name   string
		path   string
		checks []health.Check
		code   int
		body   string
	}{
		{name: "liveness", path: "/healthz", checks: []health.Check{{Name: "db", Fn: down}}, code: http.StatusOK, body: "ALIVE"},
		{name: "ready", path: "/readyz", checks: []health.Check{{Name: "db", Fn: ok}}, code: http.StatusOK, body: "READY"},
		{name: "not ready", path: "/readyz", checks: []health.Check{{Name: "db", Fn: ok}, {Name: "redis", Fn: down}}, code: http.StatusServiceUnavailable, body: "NOT_READY"},
		{name: "unknown path", path: "/metrics", code: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			health.Handler(log, time.Second, tt.checks...).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.code, rec.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, rec.Body.String())
			}
		})
	}
}

func TestHandler_CheckTimeout(t *testing.T) {
	t.Parallel()

	slow := func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}

	rec := httptest.NewRecorder()
	health.Handler(nil, 10*time.Millisecond, health.Check{Name: "slow", Fn: slow}).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func freeAddr(t *testing.T) string {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err, "unable to get free port")
	addr := l.Addr().String()
	require.NoError(t, l.Close(), "close listener")
	return addr
}

func TestServer_Run(t *testing.T) {
	t.Parallel()

	addr := freeAddr(t)
	srv := health.NewServer(health.Config{Addr: addr, CheckTimeout: time.Second, ShutdownTimeout: 100 * time.Millisecond}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	var resp *http.Response
	var err error
	for range 50 {
		resp, err = http.Get("http://" + addr + "/healthz")
		if err == nil {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	require.NoError(t, err, "http get after 50 retries")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		require.Fail(t, "run did not finish")
	}
}

func TestServer_Run_Disabled(t *testing.T) {
	t.Parallel()

	srv := health.NewServer(health.Config{}, nil)
	require.NoError(t, srv.Run(context.Background()))
}
