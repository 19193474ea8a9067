package channel_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhruvv028/Notifyhub-notification-service/pkg/channel"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/notify"
)

func TestRegistry_Send(t *testing.T) {
	t.Parallel()

	reg := channel.NewRegistry().
		Register(notify.TypeEmail, staticSender(channel.Delivered("email"))).
		Register(notify.TypeSMS, staticSender(channel.Delivered("sms")))

	user := &notify.User{ID: "u1"}

	t.Run("routes by type", func(t *testing.T) {
		t.Parallel()

		out := reg.Send(context.Background(), user, &notify.Notification{Type: notify.TypeSMS})
		assert.True(t, out.OK)
		assert.Equal(t, "sms", out.Detail)
	})

	t.Run("unregistered type is permanent", func(t *testing.T) {
		t.Parallel()

		out := reg.Send(context.Background(), user, &notify.Notification{Type: notify.TypeInApp})
		assert.False(t, out.OK)
		assert.True(t, out.Permanent)
		assert.Equal(t, "Unknown notification type: in_app", out.Detail)
		require.ErrorIs(t, out.Err, notify.ErrValidation)
	})

	t.Run("lookup", func(t *testing.T) {
		t.Parallel()

		_, ok := reg.Lookup(notify.TypeEmail)
		assert.True(t, ok)
		_, ok = reg.Lookup(notify.Type("fax"))
		assert.False(t, ok)
	})
}

func TestOutcomeConstructors(t *testing.T) {
	t.Parallel()

	ok := channel.Delivered("done")
	assert.True(t, ok.OK)
	assert.NoError(t, ok.Err)

	failed := channel.Failed(channel.ErrMissingPhone)
	assert.False(t, failed.OK)
	assert.False(t, failed.Permanent)
	assert.Equal(t, channel.ErrMissingPhone.Error(), failed.Detail)

	rejected := channel.Rejected("nope", notify.ErrInvalidType)
	assert.True(t, rejected.Permanent)
	assert.Equal(t, "nope", rejected.Detail)
}
