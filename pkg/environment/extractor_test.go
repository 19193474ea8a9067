package environment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhruvv028/Notifyhub-notification-service/pkg/environment"
)

func TestLogAttr(t *testing.T) {
	t.Parallel()

	attr, ok := environment.LogAttr(environment.WithContext(context.Background(), environment.Staging))
	require.True(t, ok)
	assert.Equal(t, "env", attr.Key)
	assert.Equal(t, "staging", attr.Value.String())

	_, ok = environment.LogAttr(context.Background())
	assert.False(t, ok)
}
