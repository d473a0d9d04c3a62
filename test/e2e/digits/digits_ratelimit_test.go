package digits_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/digits/pkg/digitsdk"
	"github.com/stretchr/testify/require"
)

// TestLoginRateLimit runs with the production limits and expects the sixth
// failed login for one username to be throttled.
func TestLoginRateLimit(t *testing.T) {
	baseURL, cleanup := setupDigitsContainer(t, nil)
	defer cleanup()

	ctx := t.Context()
	c := newClient(t, baseURL)

	var limited bool
	for i := 0; i < 6; i++ {
		_, err := c.Login(ctx, "mallory", "wrong-password")
		var apiErr *digitsdk.APIError
		require.True(t, errors.As(err, &apiErr), "attempt %d: %v", i+1, err)
		if apiErr.StatusCode == http.StatusTooManyRequests {
			limited = true
			break
		}
		require.Equal(t, digitsdk.ErrorCodeInvalidCredentials, apiErr.Code)
	}
	require.True(t, limited, "expected login to be rate limited")
}
