package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShutdownWithoutProviders(t *testing.T) {
	// SetupFromEnv can fail before any provider exists, callers defer
	// Shutdown on the zero value regardless
	require.NoError(t, Telemetry{}.Shutdown(context.Background()))
}
