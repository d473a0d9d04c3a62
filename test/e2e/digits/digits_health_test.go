package digits_test

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestLivezEndpoint verifies the liveness probe on a fresh container.
func TestLivezEndpoint(t *testing.T) {
	baseURL, cleanup := setupDigitsContainer(t, relaxedRateLimits)
	defer cleanup()

	health, err := newClient(t, baseURL).Livez(t.Context())
	assertHealthy(t, health, err)
}

// TestReadyzEndpoint verifies the database check reports ok.
func TestReadyzEndpoint(t *testing.T) {
	baseURL, cleanup := setupDigitsContainer(t, relaxedRateLimits)
	defer cleanup()

	health, err := newClient(t, baseURL).Readyz(t.Context())
	assertHealthy(t, health, err)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)
}
