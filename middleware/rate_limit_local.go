package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"quote-generator-api/utils"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LocalRateLimiter applies the same per-endpoint limits as RateLimiter with
// in-process token buckets. It is used when no Redis is configured, so limits
// are per instance.
type LocalRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	idle     time.Duration
	prune    rate.Sometimes
	logger   *slog.Logger
}

func NewLocalRateLimiter(logger *slog.Logger) *LocalRateLimiter {
	return &LocalRateLimiter{
		visitors: make(map[string]*visitor),
		idle:     30 * time.Minute,
		prune:    rate.Sometimes{Interval: time.Minute},
		logger:   logger,
	}
}

func (l *LocalRateLimiter) RateLimitMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			bucket, config := endpointConfig(r.URL.Path)
			key := rateLimitKey(r, bucket)
			limiter := l.limiter(key, config)

			allowed := limiter.Allow()
			remaining := int(limiter.Tokens())
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(config.Requests))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if !allowed {
				l.logger.Warn("rate limit exceeded", "key", key, "path", r.URL.Path)
				perToken := config.Window / time.Duration(config.Requests)
				w.Header().Set("Retry-After", strconv.Itoa(int(perToken.Seconds())+1))
				utils.SendErrorResponse(w, http.StatusTooManyRequests, config.Message)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (l *LocalRateLimiter) limiter(key string, config RateLimitConfig) *rate.Limiter {
	l.prune.Do(l.pruneIdle)

	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[key]
	if !ok {
		every := rate.Every(config.Window / time.Duration(config.Requests))
		v = &visitor{limiter: rate.NewLimiter(every, config.Requests)}
		l.visitors[key] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

func (l *LocalRateLimiter) pruneIdle() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := time.Now().Add(-l.idle)
	for key, v := range l.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(l.visitors, key)
		}
	}
}

// Len reports the number of tracked client/endpoint pairs.
func (l *LocalRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}
