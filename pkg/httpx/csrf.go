package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/digits/pkg/cryptox"
	"github.com/aussiebroadwan/digits/pkg/slogx"
)

// CSRFConfig configures the double-submit cookie check.
type CSRFConfig struct {
	CookieName string
	HeaderName string
	FieldName  string
	Secure     bool
}

// DefaultCSRFConfig matches the names browsers and the SDK use.
var DefaultCSRFConfig = CSRFConfig{
	CookieName: "csrftoken",
	HeaderName: "X-CSRF-Token",
	FieldName:  "csrf_token",
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

// CSRFMiddleware issues a random token cookie to every client and requires
// state-changing requests to echo it back in a header or form field.
func CSRFMiddleware(cfg CSRFConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			var cookieToken string
			if ck, err := r.Cookie(cfg.CookieName); err == nil {
				cookieToken = ck.Value
			}

			if !isSafeMethod(r.Method) {
				sent := r.Header.Get(cfg.HeaderName)
				if sent == "" {
					sent = r.PostFormValue(cfg.FieldName)
				}
				if !cryptox.TokensEqual(cookieToken, sent) {
					log.Warn("csrf check failed",
						slog.String("endpoint", r.URL.Path),
						slog.Bool("has_cookie", cookieToken != ""),
					)
					writeError(w, http.StatusForbidden, "csrf_failed", "CSRF token missing or incorrect.")
					return
				}
			}

			if cookieToken == "" {
				tok, err := cryptox.GenerateToken(cryptox.TokenSize128)
				if err != nil {
					log.Error("failed to generate csrf token", slog.Any("error", err))
					writeError(w, http.StatusInternalServerError, "server_error", "Internal server error.")
					return
				}
				cookieToken = tok
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.CookieName,
					Value:    tok,
					Path:     "/",
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx = context.WithValue(ctx, CtxKeyCSRFToken, cookieToken)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
