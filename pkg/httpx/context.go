package httpx

import "context"

type ctxKey string

const (
	CtxKeyUserID    ctxKey = "user_id"
	CtxKeyPrincipal ctxKey = "principal"
	CtxKeyCSRFToken ctxKey = "csrf_token"
)

// Principal is whatever a session cookie resolves to.
type Principal interface {
	PrincipalID() string
}

func contextWithPrincipal(ctx context.Context, p Principal) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, p.PrincipalID())
	return context.WithValue(ctx, CtxKeyPrincipal, p)
}

// PrincipalFromContext returns the principal set by SessionMiddleware.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(CtxKeyPrincipal).(Principal)
	return p, ok
}

// UserIDFromContext returns the authenticated user id, or "".
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(CtxKeyUserID).(string)
	return id
}

// CSRFTokenFromContext returns the anti-forgery token for the current request.
func CSRFTokenFromContext(ctx context.Context) string {
	tok, _ := ctx.Value(CtxKeyCSRFToken).(string)
	return tok
}
