package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"pms/internal/transport/http/api"
)

type RateLimitKeyFunc func(r *http.Request) string

type RateLimitOption func(*rateLimiter)

type rateLimiter struct {
	limit   int
	window  time.Duration
	keyFn   RateLimitKeyFunc
	store   limiter.Store
	limiter *limiter.Limiter
}

func WithKeyFunc(fn RateLimitKeyFunc) RateLimitOption {
	return func(rl *rateLimiter) {
		if fn != nil {
			rl.keyFn = fn
		}
	}
}

// WithStore swaps the in-process counter store, e.g. for a shared one.
func WithStore(store limiter.Store) RateLimitOption {
	return func(rl *rateLimiter) {
		if store != nil {
			rl.store = store
		}
	}
}

// RateLimit allows limit requests per window for each caller, keyed by
// actor id when authenticated and by client IP otherwise.
func RateLimit(limit int, window time.Duration, opts ...RateLimitOption) func(http.Handler) http.Handler {
	rl := newRateLimiter(limit, window, actorOrIPKey, opts...)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.enforce(w, r) {
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SessionRateLimit is the tighter per-IP budget for issuing identity tokens.
func SessionRateLimit(baseLimit int, window time.Duration, opts ...RateLimitOption) func(http.Handler) http.Handler {
	return RateLimit(max(baseLimit/4, 1), window, append([]RateLimitOption{WithKeyFunc(clientIPKey)}, opts...)...)
}

func newRateLimiter(limit int, window time.Duration, keyFn RateLimitKeyFunc, opts ...RateLimitOption) *rateLimiter {
	rl := &rateLimiter{limit: limit, window: window, keyFn: keyFn}
	for _, opt := range opts {
		opt(rl)
	}
	if rl.keyFn == nil {
		rl.keyFn = actorOrIPKey
	}
	if rl.store == nil {
		rl.store = memory.NewStore()
	}
	if limit > 0 {
		rl.limiter = limiter.New(rl.store, limiter.Rate{Period: window, Limit: int64(limit)})
	}
	return rl
}

func (rl *rateLimiter) enforce(w http.ResponseWriter, r *http.Request) bool {
	if rl.limiter == nil {
		return true
	}

	key := rl.keyFn(r)
	if key == "" {
		key = clientIPKey(r)
	}
	state, err := rl.limiter.Get(r.Context(), key)
	if err != nil {
		slog.Warn("rate limiter unavailable", "err", err)
		return true
	}

	resetIn := durationSeconds(time.Until(time.Unix(state.Reset, 0)))
	w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(state.Limit, 10))
	w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(max(state.Remaining, 0), 10))
	w.Header().Set("X-RateLimit-Reset", strconv.Itoa(resetIn))

	if state.Reached {
		w.Header().Set("Retry-After", strconv.Itoa(max(resetIn, 1)))
		slog.Warn("rate limit exceeded",
			"key", key,
			"path", r.URL.Path,
			"method", r.Method,
			"limit", rl.limit,
			"windowSec", int(rl.window.Seconds()),
		)
		api.Fail(w, http.StatusTooManyRequests, "rate_limited", "too many requests", GetRequestID(r.Context()))
		return false
	}
	return true
}

func actorOrIPKey(r *http.Request) string {
	if actor, ok := GetActor(r.Context()); ok {
		return "user:" + actor.ID
	}
	return clientIPKey(r)
}

func clientIPKey(r *http.Request) string {
	if fwd := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); fwd != "" {
		parts := strings.Split(fwd, ",")
		if value := strings.TrimSpace(parts[0]); value != "" {
			return "ip:" + value
		}
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return "ip:" + host
	}
	return "ip:" + strings.TrimSpace(r.RemoteAddr)
}

func durationSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	seconds := int(d.Seconds())
	if seconds <= 0 {
		return 1
	}
	return seconds
}
