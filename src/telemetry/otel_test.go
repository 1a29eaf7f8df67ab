package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupOTelSDKDisabled(t *testing.T) {
	t.Setenv(EndpointEnv, "")

	assert.False(t, Enabled())

	shutdown, err := SetupOTelSDK(context.Background(), "option-screener")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
