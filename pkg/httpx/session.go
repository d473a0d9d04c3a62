package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/aussiebroadwan/digits/pkg/slogx"
)

// SessionResolver turns a session cookie value into the principal it belongs
// to. It returns an error for unknown or expired sessions.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (Principal, error)
}

// SessionCookie describes the login cookie.
type SessionCookie struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

// Set writes the cookie carrying token.
func (c SessionCookie) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.TTL.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the cookie on the client.
func (c SessionCookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Token returns the cookie value sent with r, or "".
func (c SessionCookie) Token(r *http.Request) string {
	ck, err := r.Cookie(c.Name)
	if err != nil {
		return ""
	}
	return ck.Value
}

// SessionMiddleware resolves the session cookie, when present, and puts the
// principal into the request context. Requests without a valid session pass
// through unauthenticated; use RequireSession to reject them.
func SessionMiddleware(cookie SessionCookie, resolver SessionResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := cookie.Token(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			p, err := resolver.ResolveSession(ctx, token)
			if err != nil {
				slogx.FromContext(ctx).Debug("session cookie rejected", slog.Any("error", err))
				cookie.Clear(w)
				next.ServeHTTP(w, r)
				return
			}

			ctx = contextWithPrincipal(ctx, p)
			ctx = slogx.With(ctx, slog.String("user_id", p.PrincipalID()))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession rejects requests without an authenticated principal. Browsers
// are sent to loginPath with a next parameter, API callers get a 401.
func RequireSession(loginPath string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := PrincipalFromContext(r.Context()); ok {
				next.ServeHTTP(w, r)
				return
			}

			if WantsHTML(r) {
				target := loginPath + "?next=" + url.QueryEscape(r.URL.RequestURI())
				http.Redirect(w, r, target, http.StatusSeeOther)
				return
			}

			w.Header().Set("Location", loginPath)
			writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required. Log in at "+loginPath+".")
		})
	}
}
