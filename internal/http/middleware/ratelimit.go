// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements a fixed-window rate limiter keyed by client identity.
// Each key gets a counter that resets when its window expires; the (N+1)-th
// request inside one window is rejected with 429.
//
// Features:
//   - Pluggable counter Store: process-local MemoryStore or RedisStore for
//     limits shared across instances
//   - Pluggable identity function (client IP by default)
//   - Opportunistic garbage collection of expired windows in MemoryStore
//   - Seamless bypass for idempotent replays (when paired with IdempotencyValidator)
//
// Notes:
//   - MemoryStore state does not survive a restart.
//   - The limiter fails open: if the store errors, the request is served and
//     the failure is logged.
//   - The limiter is intended for edge-level abuse control and cost protection;
//     it is not an authorization mechanism.
package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

var rateLimitRejections = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "rate_limit_rejections_total",
		Help: "Requests rejected with 429 by the fixed-window limiter.",
	},
	[]string{"scope"},
)

func init() {
	prometheus.MustRegister(rateLimitRejections)
}

// RateLimitMessage is the error text returned with every 429.
const RateLimitMessage = "Too many requests from this IP, please try again later."

// KeyFunc selects the identity used to key a rate-limit window.
//
// Implementations should return a stable string for the duration of a request
// (e.g., "ip:<addr>").
type KeyFunc func(*gin.Context) string

// KeyByClientIP keys windows by the client address as resolved by Gin
// (honoring the engine's trusted proxy settings).
func KeyByClientIP() KeyFunc {
	return func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	}
}

// Store counts hits per key inside fixed windows.
//
// Hit records one request for key and returns the number of requests seen in
// the current window (including this one) and the time the window resets.
// A new window starts on the first hit after the previous one expired.
type Store interface {
	Hit(ctx context.Context, key string, window time.Duration) (count int64, resetAt time.Time, err error)
}

// window is one fixed-window counter.
type window struct {
	count   int64
	resetAt time.Time
}

// MemoryStore is a process-local Store. It is safe for concurrent use.
type MemoryStore struct {
	mu       sync.Mutex
	windows  map[string]*window
	cleanupN uint64
	now      func() time.Time
}

// NewMemoryStore returns an empty in-memory window store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// Hit implements Store.
//
// Expired windows are evicted opportunistically every ~5000 hits, before the
// requested key is touched, so memory stays bounded under churn.
func (m *MemoryStore) Hit(_ context.Context, key string, d time.Duration) (int64, time.Time, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.cleanupN++
	if m.cleanupN >= 5000 {
		for k, w := range m.windows {
			if !now.Before(w.resetAt) {
				delete(m.windows, k)
			}
		}
		m.cleanupN = 0
	}

	w, ok := m.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(d)}
		m.windows[key] = w
	}
	w.count++
	return w.count, w.resetAt, nil
}

// Reset forgets every window.
func (m *MemoryStore) Reset() {
	m.mu.Lock()
	m.windows = make(map[string]*window)
	m.cleanupN = 0
	m.mu.Unlock()
}

// Len reports the number of tracked windows (expired ones included until GC).
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.windows)
}

// RedisStore keeps windows in Redis so that several instances share limits.
// Each key is a counter with a TTL equal to the window.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore builds a RedisStore. Keys are written as prefix+key; an empty
// prefix defaults to "ratelimit:".
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "ratelimit:"
	}
	return &RedisStore{client: client, prefix: prefix}
}

// NewRedisClient parses a redis:// URL into a client. When the URL cannot be
// parsed it is treated as a bare host:port address.
func NewRedisClient(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		opt = &redis.Options{Addr: url}
	}
	return redis.NewClient(opt)
}

// Hit implements Store using INCR and PEXPIRE. The expiry is set on the first
// hit of a window, and re-applied when a counter is found without a TTL
// (e.g. a crash between the two commands).
func (s *RedisStore) Hit(ctx context.Context, key string, d time.Duration) (int64, time.Time, error) {
	k := s.prefix + key
	n, err := s.client.Incr(ctx, k).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("ratelimit incr: %w", err)
	}
	if n == 1 {
		if err := s.client.PExpire(ctx, k, d).Err(); err != nil {
			return 0, time.Time{}, fmt.Errorf("ratelimit expire: %w", err)
		}
		return n, time.Now().Add(d), nil
	}
	ttl, err := s.client.PTTL(ctx, k).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("ratelimit ttl: %w", err)
	}
	if ttl < 0 {
		if err := s.client.PExpire(ctx, k, d).Err(); err != nil {
			return 0, time.Time{}, fmt.Errorf("ratelimit expire: %w", err)
		}
		ttl = d
	}
	return n, time.Now().Add(ttl), nil
}

// RateLimiter enforces at most Limit requests per Window for each key.
//
// This type is safe for concurrent use as long as its Store is.
type RateLimiter struct {
	scope  string
	limit  int64
	window time.Duration
	keyFn  KeyFunc
	store  Store
}

// NewRateLimiter constructs a fixed-window limiter.
//
//   - scope:  label used for metrics and to namespace keys ("edge", "chat").
//   - limit:  maximum requests per window; values <= 0 are coerced to 1.
//   - window: window length; values <= 0 default to one minute.
//   - keyFn:  maps a request to an identity; nil means KeyByClientIP.
//   - store:  counter backend; nil means a fresh MemoryStore.
func NewRateLimiter(scope string, limit int, window time.Duration, keyFn KeyFunc, store Store) *RateLimiter {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	if keyFn == nil {
		keyFn = KeyByClientIP()
	}
	if store == nil {
		store = NewMemoryStore()
	}
	return &RateLimiter{
		scope:  scope,
		limit:  int64(limit),
		window: window,
		keyFn:  keyFn,
		store:  store,
	}
}

// IsRateBypass reports whether IdempotencyValidator marked this request for
// rate-limit bypass (i.e., it is a replay of a previously completed request).
//
// When true, Handler() will skip limiting so replays are served without
// consuming the window.
func IsRateBypass(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyRateBypass) // set by IdempotencyValidator
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// Handler returns a Gin middleware that enforces the limit.
//
// Allowed requests get X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset headers. Rejected requests receive:
//
//	HTTP/1.1 429 Too Many Requests
//	Retry-After: <seconds>
//	{
//	  "success":    false,
//	  "error":      "Too many requests from this IP, please try again later.",
//	  "code":       "rate_limited",
//	  "request_id": "<uuid>"
//	}
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsRateBypass(c) {
			c.Next()
			return
		}

		key := rl.scope + ":" + rl.keyFn(c)
		n, resetAt, err := rl.store.Hit(c.Request.Context(), key, rl.window)
		if err != nil {
			LoggerFrom(c).Warn().Err(err).Str("scope", rl.scope).Msg("rate limiter store failed; allowing request")
			c.Next()
			return
		}

		h := c.Writer.Header()
		h.Set("X-RateLimit-Limit", strconv.FormatInt(rl.limit, 10))
		h.Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

		if n <= rl.limit {
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(rl.limit-n, 10))
			c.Next()
			return
		}

		rateLimitRejections.WithLabelValues(rl.scope).Inc()
		h.Set("X-RateLimit-Remaining", "0")
		h.Set("Retry-After", strconv.Itoa(retryAfter(time.Until(resetAt))))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"success":    false,
			"error":      RateLimitMessage,
			"code":       "rate_limited",
			"request_id": GetRequestID(c),
		})
	}
}

// retryAfter rounds d up to whole seconds, never below one.
func retryAfter(d time.Duration) int {
	s := int(math.Ceil(d.Seconds()))
	if s < 1 {
		return 1
	}
	return s
}
