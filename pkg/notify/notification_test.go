package notify_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dhruvv028/Notifyhub-notification-service/pkg/notify"
)

func TestType_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, notify.TypeEmail.Valid())
	assert.True(t, notify.TypeSMS.Valid())
	assert.True(t, notify.TypeInApp.Valid())
	assert.False(t, notify.Type("push").Valid())
	assert.False(t, notify.Type("").Valid())
}

func TestDisabledMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		typ  notify.Type
		want string
	}{
		{notify.TypeEmail, "Email notifications disabled by user"},
		{notify.TypeSMS, "SMS notifications disabled by user"},
		{notify.TypeInApp, "In-app notifications disabled by user"},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, notify.DisabledMessage(tt.typ))
		})
	}
}

func TestPreference_IsEnabled(t *testing.T) {
	t.Parallel()

	def := notify.DefaultPreference("u1", time.Now())
	assert.True(t, def.IsEnabled(notify.TypeEmail))
	assert.True(t, def.IsEnabled(notify.TypeSMS))
	assert.True(t, def.IsEnabled(notify.TypeInApp))

	pref := notify.Preference{UserID: "u1", EmailEnabled: true}
	assert.True(t, pref.IsEnabled(notify.TypeEmail))
	assert.False(t, pref.IsEnabled(notify.TypeSMS))
	assert.False(t, pref.IsEnabled(notify.TypeInApp))

	// unknown channels are left to the sender to reject
	assert.True(t, pref.IsEnabled(notify.Type("push")))
}

func TestStartOfDay(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+5", 5*60*60)
	in := time.Date(2026, 4, 12, 23, 59, 59, 10, loc)
	assert.Equal(t, time.Date(2026, 4, 12, 0, 0, 0, 0, loc), notify.StartOfDay(in))
}
