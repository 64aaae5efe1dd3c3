// middleware/rate_limit.go
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"quote-generator-api/utils"
)

type RateLimiter struct {
	client *redis.Client
	logger *slog.Logger
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
	Message  string
}

var defaultConfigs = map[string]RateLimitConfig{
	"/api/submit-quote": {
		Requests: 10,
		Window:   time.Minute,
		Message:  "Too many quote submissions. Please wait a minute.",
	},
	"/api/submit-feedback": {
		Requests: 5,
		Window:   time.Minute * 10,
		Message:  "Too many feedback submissions. Please try again later.",
	},
	"/api/webhook": {
		Requests: 30,
		Window:   time.Minute,
		Message:  "Too many webhook changes. Please slow down.",
	},
	"default": {
		Requests: 120,
		Window:   time.Minute,
		Message:  "Rate limit exceeded. Please slow down your requests.",
	},
}

func NewRateLimiter(client *redis.Client, logger *slog.Logger) *RateLimiter {
	return &RateLimiter{client: client, logger: logger}
}

// RateLimitMiddleware counts requests per client and endpoint in Redis. When
// Redis is unavailable the request is let through and the error logged.
func (rl *RateLimiter) RateLimitMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			bucket, config := endpointConfig(r.URL.Path)
			key := rateLimitKey(r, bucket)

			allowed, remaining, resetTime, err := rl.checkRateLimit(r.Context(), key, config)
			if err != nil {
				rl.logger.Error("rate limit check failed", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(config.Requests))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

			if !allowed {
				rl.logger.Warn("rate limit exceeded", "key", key, "path", r.URL.Path)
				w.Header().Set("Retry-After", strconv.FormatInt(int64(time.Until(resetTime).Seconds()), 10))
				utils.SendErrorResponse(w, http.StatusTooManyRequests, config.Message)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// endpointConfig returns the limit bucket for path and its config. Paths
// without their own entry share the "default" bucket.
func endpointConfig(path string) (string, RateLimitConfig) {
	path = strings.TrimSuffix(path, "/")
	if config, exists := defaultConfigs[path]; exists {
		return path, config
	}
	return "default", defaultConfigs["default"]
}

func rateLimitKey(r *http.Request, bucket string) string {
	return fmt.Sprintf("rate_limit:%s:%s", ClientIP(r), bucket)
}

func (rl *RateLimiter) checkRateLimit(ctx context.Context, key string, config RateLimitConfig) (allowed bool, remaining int, resetTime time.Time, err error) {
	now := time.Now()
	windowStart := now.Truncate(config.Window)
	windowEnd := windowStart.Add(config.Window)

	luaScript := `
		local key = KEYS[1]
		local window_start = tonumber(ARGV[1])
		local limit = tonumber(ARGV[2])
		local member = ARGV[3]
		local ttl = tonumber(ARGV[4])

		redis.call('ZREMRANGEBYSCORE', key, 0, window_start - 1)

		local current_count = redis.call('ZCARD', key)

		if current_count < limit then
			redis.call('ZADD', key, window_start, member)
			redis.call('EXPIRE', key, ttl)
			return {1, limit - current_count - 1}
		else
			return {0, 0}
		end
	`

	member := fmt.Sprintf("%d", now.UnixNano())
	result, err := rl.client.Eval(ctx, luaScript, []string{key},
		windowStart.Unix(), config.Requests, member, int64(config.Window.Seconds())+1).Result()
	if err != nil {
		return false, 0, time.Time{}, err
	}

	resultSlice, ok := result.([]interface{})
	if !ok || len(resultSlice) != 2 {
		return false, 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}

	allowedInt, ok1 := resultSlice[0].(int64)
	remainingInt, ok2 := resultSlice[1].(int64)
	if !ok1 || !ok2 {
		return false, 0, time.Time{}, fmt.Errorf("failed to parse redis result")
	}

	return allowedInt == 1, int(remainingInt), windowEnd, nil
}

// ClientIP prefers proxy headers over RemoteAddr.
func ClientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		ips := strings.Split(ip, ",")
		return strings.TrimSpace(ips[0])
	}

	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}

	if ip := r.Header.Get("CF-Connecting-IP"); ip != "" {
		return ip
	}

	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
