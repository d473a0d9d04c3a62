package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/digits/internal/digits/domain"
	"github.com/aussiebroadwan/digits/internal/digits/service"
	"github.com/aussiebroadwan/digits/internal/digits/store"
	"github.com/aussiebroadwan/digits/pkg/httpx"
	"github.com/aussiebroadwan/digits/pkg/slogx"

	_ "github.com/aussiebroadwan/digits/api/digits" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	loginPath         = "/login"
	SessionCookieName = "sessionid"
)

// Pinger is anything readiness can probe besides the database.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	cookie       httpx.SessionCookie

	store store.Store

	// SessionStore is probed by /readyz when sessions live outside the database.
	SessionStore Pinger

	EntryService *service.EntryService
	AuthService  *service.AuthService
}

func NewRouter(
	buildVersion string,
	st store.Store,
	cookie httpx.SessionCookie,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		cookie:       cookie,
		store:        st,
	}
	if r.cookie.Name == "" {
		r.cookie.Name = SessionCookieName
	}
	return r
}

func (r *Router) ApplyRoutes() {
	csrf := httpx.DefaultCSRFConfig
	csrf.Secure = r.cookie.Secure

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CSRFMiddleware(csrf),
		httpx.SessionMiddleware(r.cookie, sessionResolver{auth: r.AuthService}),
	}

	r.registerEntries()
	r.registerAuth()
	r.registerSystem()

	r.Mux.Handle("GET /swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Digits API
//	@version		0.1.0
//	@description	Stores pairs of five digit numbers behind a 40 character security string.
//	@description	An entry is only revealed after answering a challenge on three characters of that string.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/digits
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// sessionResolver adapts AuthService to the session middleware.
type sessionResolver struct {
	auth *service.AuthService
}

func (s sessionResolver) ResolveSession(ctx context.Context, token string) (httpx.Principal, error) {
	return s.auth.Authenticate(ctx, token)
}

// actorFrom returns the authenticated actor, or the zero Actor.
func actorFrom(r *http.Request) domain.Actor {
	p, ok := httpx.PrincipalFromContext(r.Context())
	if !ok {
		return domain.Actor{}
	}
	a, _ := p.(domain.Actor)
	return a
}

func (r *Router) registerEntries() {
	h := &EntriesHandler{EntryService: r.EntryService}
	authn := httpx.RequireSession(loginPath)

	r.Mux.Handle("GET /{$}",
		httpx.Chain(http.HandlerFunc(h.HandleIndex),
			authn,
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /start",
		httpx.Chain(http.HandlerFunc(h.HandleStart),
			authn,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /commit",
		httpx.Chain(http.HandlerFunc(h.HandleCommit),
			authn,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /list",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			authn,
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /reveal/{entry_id}",
		httpx.Chain(http.HandlerFunc(h.HandleReveal),
			authn,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// Answers are guessable one character at a time, keep attempts scarce.
	r.Mux.Handle("POST /verify/{entry_id}",
		httpx.Chain(http.HandlerFunc(h.HandleVerify),
			authn,
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /delete/{entry_id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			authn,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService, Cookie: r.cookie}
	authn := httpx.RequireSession(loginPath)

	r.Mux.Handle("POST /register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "username"),
		),
	)
	r.Mux.Handle("POST /logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /password",
		httpx.Chain(http.HandlerFunc(h.HandleChangePassword),
			authn,
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("GET /profile",
		httpx.Chain(http.HandlerFunc(h.HandleProfile),
			authn,
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.SessionStore),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
