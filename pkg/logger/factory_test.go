package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhruvv028/Notifyhub-notification-service/pkg/environment"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/logger"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), buf.String())
	return entry
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("defaults to JSON at info", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		log.Debug("hidden")
		log.Info("hello")

		entry := decode(t, buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("text format", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		logger.New(logger.WithOutput(buf), logger.WithFormat(logger.FormatText)).Info("hello")
		assert.Contains(t, buf.String(), "level=INFO")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("unknown format is ignored", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		logger.New(logger.WithOutput(buf), logger.WithFormat("xml")).Info("hello")
		assert.Equal(t, "hello", decode(t, buf)["msg"])
	})

	t.Run("static attributes", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		logger.New(logger.WithOutput(buf), logger.WithAttr(slog.String("svc", "test"))).Info("msg")
		assert.Equal(t, "test", decode(t, buf)["svc"])
	})

	t.Run("context extractors", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithContextExtractors(nil, environment.LogAttr),
		)
		log.InfoContext(environment.WithContext(context.Background(), environment.Production), "msg")
		assert.Equal(t, "production", decode(t, buf)["env"])
	})
}

func TestWithEnvironment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env       string
		debugSeen bool
		json      bool
	}{
		{env: "", debugSeen: true},
		{env: "development", debugSeen: true},
		{env: "stage", json: true},
		{env: "prod", json: true},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Parallel()
			buf := &bytes.Buffer{}
			log := logger.New(logger.WithOutput(buf), logger.WithEnvironment(tt.env, "notifyhub"))
			log.Debug("debug")

			if !tt.debugSeen {
				assert.Empty(t, buf.String())
				log.Info("info")
			}
			if tt.json {
				assert.Equal(t, "notifyhub", decode(t, buf)["service"])
				return
			}
			assert.Contains(t, buf.String(), "service=notifyhub")
		})
	}
}

func TestWithContextAttrs(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf)).With(logger.Component("processor"))

	ctx := logger.WithContextAttrs(context.Background(), logger.QueueItemID("item-1"))
	ctx = logger.WithContextAttrs(ctx, logger.NotificationID("n-1"))
	assert.Equal(t, ctx, logger.WithContextAttrs(ctx))

	log.InfoContext(ctx, "attempt")

	entry := decode(t, buf)
	assert.Equal(t, "item-1", entry["queue_item_id"])
	assert.Equal(t, "n-1", entry["notification_id"])
	assert.Equal(t, "processor", entry["component"])
}

func TestSetAsDefault(t *testing.T) {
	buf := &bytes.Buffer{}
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logger.SetAsDefault(logger.New(logger.WithOutput(buf)))
	slog.Info("default")
	assert.Equal(t, "default", decode(t, buf)["msg"])
}
