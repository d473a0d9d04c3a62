package digitsdk_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/digits/pkg/digitsdk"
	"github.com/aussiebroadwan/digits/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestAPIErrorWriteAndParse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/livez":
			httpx.WriteJSON(w, http.StatusOK, digitsdk.HealthResponse{Status: "ok"})
		case "/list":
			digitsdk.ErrUnauthorized.WriteError(w)
		default:
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("<html>bad gateway</html>"))
		}
	}))
	t.Cleanup(srv.Close)

	c, err := digitsdk.NewClient(srv.URL + "/")
	require.NoError(t, err)
	ctx := context.Background()

	health, err := c.Livez(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", health.Status)

	_, err = c.List(ctx)
	require.ErrorIs(t, err, digitsdk.ErrUnauthorized)
	var apiErr *digitsdk.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	_, err = c.Profile(ctx)
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Equal(t, digitsdk.ErrorCodeServerError, apiErr.Code)
}

func TestClientSendsCSRFToken(t *testing.T) {
	var gotHeader string
	h := httpx.CSRFMiddleware(httpx.DefaultCSRFConfig)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/livez":
			httpx.WriteJSON(w, http.StatusOK, digitsdk.HealthResponse{Status: "ok"})
		case "/delete/abc":
			gotHeader = r.Header.Get("X-CSRF-Token")
			http.Redirect(w, r, "/list", http.StatusSeeOther)
		}
	}))
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := digitsdk.NewClient(srv.URL)
	require.NoError(t, err)

	require.NoError(t, c.Delete(context.Background(), "abc"))
	require.NotEmpty(t, gotHeader)

	tok, err := c.CSRFToken(context.Background())
	require.NoError(t, err)
	require.Equal(t, tok, gotHeader)
}

func TestAPIErrorIs(t *testing.T) {
	custom := digitsdk.ErrValidation.WithDescription("user_number: enter exactly 5 digits (0-9)")
	require.ErrorIs(t, custom, digitsdk.ErrValidation)
	require.NotErrorIs(t, custom, digitsdk.ErrNotFound)
	require.Equal(t, "invalid input", digitsdk.ErrValidation.Description)
}
