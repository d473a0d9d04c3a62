package httpx

import (
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/digits/pkg/slogx"
	"golang.org/x/time/rate"
)

// RateLimitConfig is a token bucket: RequestsPerWindow refill over Window,
// with up to Burst requests allowed back to back.
type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	Burst             int
}

func (c RateLimitConfig) limit() rate.Limit {
	if c.Window <= 0 {
		return rate.Inf
	}
	return rate.Limit(float64(c.RequestsPerWindow) / c.Window.Seconds())
}

// Profiles used by the routes. Each one can be overridden with
// RATELIMIT_<NAME>_REQUESTS, RATELIMIT_<NAME>_WINDOW_SEC and RATELIMIT_<NAME>_BURST.
var (
	// StrictLimit guards credential checks and challenge answers.
	StrictLimit = RateLimitConfig{RequestsPerWindow: 5, Window: time.Minute, Burst: 5}

	// ModerateLimit covers writes by a logged in user.
	ModerateLimit = RateLimitConfig{RequestsPerWindow: 20, Window: time.Minute, Burst: 20}

	// LenientLimit covers reads by a logged in user.
	LenientLimit = RateLimitConfig{RequestsPerWindow: 100, Window: time.Minute, Burst: 100}

	// PublicLimit covers probes and other unauthenticated reads.
	PublicLimit = RateLimitConfig{RequestsPerWindow: 1000, Window: time.Minute, Burst: 1000}
)

func init() {
	StrictLimit = ParseRateLimitFromEnv("STRICT", StrictLimit)
	ModerateLimit = ParseRateLimitFromEnv("MODERATE", ModerateLimit)
	LenientLimit = ParseRateLimitFromEnv("LENIENT", LenientLimit)
	PublicLimit = ParseRateLimitFromEnv("PUBLIC", PublicLimit)
}

func positiveEnvInt(key string) (int, bool) {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// ParseRateLimitFromEnv overrides fields of def from RATELIMIT_<name>_*
// variables. Missing, malformed or non-positive values keep the default.
func ParseRateLimitFromEnv(name string, def RateLimitConfig) RateLimitConfig {
	cfg := def
	prefix := "RATELIMIT_" + name + "_"

	if v, ok := positiveEnvInt(prefix + "REQUESTS"); ok {
		cfg.RequestsPerWindow = v
	}
	if v, ok := positiveEnvInt(prefix + "WINDOW_SEC"); ok {
		cfg.Window = time.Duration(v) * time.Second
	}
	if v, ok := positiveEnvInt(prefix + "BURST"); ok {
		cfg.Burst = v
	}
	return cfg
}

// KeyExtractor picks the bucket a request is counted against. An empty key
// means the request is not limited.
type KeyExtractor func(*http.Request) string

// IPKeyExtractor uses the client address, honouring X-Forwarded-For and
// X-Real-IP set by a reverse proxy.
func IPKeyExtractor(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// UserIDKeyExtractor uses the authenticated user, "" when there is none.
func UserIDKeyExtractor(r *http.Request) string {
	return UserIDFromContext(r.Context())
}

// FormFieldKeyExtractor uses a query or form value, e.g. the username on login.
func FormFieldKeyExtractor(field string) KeyExtractor {
	return func(r *http.Request) string {
		if err := r.ParseForm(); err != nil {
			return ""
		}
		return r.FormValue(field)
	}
}

// CompositeKeyExtractor joins the non-empty keys of all extractors with sep.
func CompositeKeyExtractor(sep string, extractors ...KeyExtractor) KeyExtractor {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(extractors))
		for _, ex := range extractors {
			if k := ex(r); k != "" {
				parts = append(parts, k)
			}
		}
		return strings.Join(parts, sep)
	}
}

const limiterIdleTTL = 10 * time.Minute

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterSet hands out one token bucket per key and forgets buckets that
// have been idle for limiterIdleTTL.
type limiterSet struct {
	cfg RateLimitConfig

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

func newLimiterSet(cfg RateLimitConfig) *limiterSet {
	return &limiterSet{cfg: cfg, buckets: make(map[string]*bucket), lastSweep: time.Now()}
}

func (s *limiterSet) get(key string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastSweep) > limiterIdleTTL {
		for k, b := range s.buckets {
			if now.Sub(b.lastSeen) > limiterIdleTTL {
				delete(s.buckets, k)
			}
		}
		s.lastSweep = now
	}

	b, ok := s.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(s.cfg.limit(), s.cfg.Burst)}
		s.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter
}

// RateLimitMiddleware rejects requests over cfg with 429 and a Retry-After
// header. Requests are grouped by keyFn.
func RateLimitMiddleware(cfg RateLimitConfig, keyFn KeyExtractor) Middleware {
	set := newLimiterSet(cfg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFn(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			now := time.Now()
			limiter := set.get(key, now)
			if limiter.AllowN(now, 1) {
				next.ServeHTTP(w, r)
				return
			}

			res := limiter.ReserveN(now, 1)
			retryAfter := max(int(res.DelayFrom(now).Seconds()), 1)
			res.CancelAt(now)

			slogx.FromContext(r.Context()).Warn("rate limit exceeded",
				slog.String("key", key),
				slog.String("endpoint", r.URL.Path),
				slog.Int("retry_after", retryAfter),
			)

			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.RequestsPerWindow))
			w.Header().Set("X-RateLimit-Window", cfg.Window.String())
			writeError(w, http.StatusTooManyRequests, "rate_limit_exceeded", "Too many requests. Please try again later.")
		})
	}
}

// RateLimitByIP limits per client address.
func RateLimitByIP(cfg RateLimitConfig) Middleware {
	return RateLimitMiddleware(cfg, IPKeyExtractor)
}

// RateLimitByUser limits per user and address, so a session shared across
// machines gets one bucket per machine.
func RateLimitByUser(cfg RateLimitConfig) Middleware {
	return RateLimitMiddleware(cfg, CompositeKeyExtractor(":", UserIDKeyExtractor, IPKeyExtractor))
}

// RateLimitByIPAndFormField limits per address and form value, e.g. login
// attempts per username.
func RateLimitByIPAndFormField(cfg RateLimitConfig, field string) Middleware {
	return RateLimitMiddleware(cfg, CompositeKeyExtractor(":", IPKeyExtractor, FormFieldKeyExtractor(field)))
}
