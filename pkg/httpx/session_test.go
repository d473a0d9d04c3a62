package httpx_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/digits/pkg/httpx"
	"github.com/stretchr/testify/require"
)

type testPrincipal string

func (p testPrincipal) PrincipalID() string { return string(p) }

type mapResolver map[string]string

func (m mapResolver) ResolveSession(_ context.Context, token string) (httpx.Principal, error) {
	id, ok := m[token]
	if !ok {
		return nil, errors.New("unknown session")
	}
	return testPrincipal(id), nil
}

var testCookie = httpx.SessionCookie{Name: "sessionid", TTL: time.Hour}

func protected() http.Handler {
	return httpx.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, _ := httpx.PrincipalFromContext(r.Context())
			_, _ = w.Write([]byte(p.PrincipalID() + "|" + httpx.UserIDFromContext(r.Context())))
		}),
		httpx.SessionMiddleware(testCookie, mapResolver{"good": "user-1"}),
		httpx.RequireSession("/login"),
	)
}

func TestSessionMiddleware(t *testing.T) {
	t.Run("valid cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/list", nil)
		req.AddCookie(&http.Cookie{Name: "sessionid", Value: "good"})
		rec := httptest.NewRecorder()
		protected().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "user-1|user-1", rec.Body.String())
	})

	t.Run("api caller without session", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/list", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), `"error":"unauthorized"`)
	})

	t.Run("browser without session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/reveal/abc?x=1", nil)
		req.Header.Set("Accept", "text/html,application/xhtml+xml")
		rec := httptest.NewRecorder()
		protected().ServeHTTP(rec, req)

		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/login?next=%2Freveal%2Fabc%3Fx%3D1", rec.Header().Get("Location"))
	})

	t.Run("stale cookie is cleared", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/list", nil)
		req.AddCookie(&http.Cookie{Name: "sessionid", Value: "stale"})
		rec := httptest.NewRecorder()
		protected().ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		require.Equal(t, "sessionid", cookies[0].Name)
		require.Negative(t, cookies[0].MaxAge)
	})
}

func TestSessionCookieSet(t *testing.T) {
	rec := httptest.NewRecorder()
	testCookie.Set(rec, "tok")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "tok", cookies[0].Value)
	require.True(t, cookies[0].HttpOnly)
	require.Equal(t, 3600, cookies[0].MaxAge)
}
