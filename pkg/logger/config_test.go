package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhruvv028/Notifyhub-notification-service/pkg/logger"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: " INFO ", want: slog.LevelInfo},
		{in: "", want: slog.LevelInfo},
		{in: "warning", want: slog.LevelWarn},
		{in: "Error", want: slog.LevelError},
		{in: "trace", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := logger.ParseLevel(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, logger.ErrInvalidLevel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfig_Options(t *testing.T) {
	t.Parallel()

	t.Run("overrides the preset", func(t *testing.T) {
		t.Parallel()
		opts, err := logger.Config{Level: "warn", Format: "JSON"}.Options()
		require.NoError(t, err)

		buf := &bytes.Buffer{}
		log := logger.New(append([]logger.Option{logger.WithOutput(buf), logger.WithEnvironment("development", "")}, opts...)...)
		log.Info("dropped")
		assert.Empty(t, buf.String())

		log.Warn("kept")
		assert.Equal(t, "kept", decode(t, buf)["msg"])
	})

	t.Run("empty config adds nothing", func(t *testing.T) {
		t.Parallel()
		opts, err := logger.Config{}.Options()
		require.NoError(t, err)
		assert.Empty(t, opts)
	})

	t.Run("invalid values", func(t *testing.T) {
		t.Parallel()
		_, err := logger.Config{Level: "loud"}.Options()
		assert.ErrorIs(t, err, logger.ErrInvalidLevel)

		_, err = logger.Config{Format: "xml"}.Options()
		assert.ErrorIs(t, err, logger.ErrInvalidFormat)
	})
}
