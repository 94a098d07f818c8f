// Rate limiting is in-memory token buckets, one per key. Good enough
// for a single instance; a multi-instance deployment would need this
// backed by Redis instead, same as the idempotency cache.
package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimitConfig configures RateLimit.
type RateLimitConfig struct {
	Limit          int
	Window         time.Duration
	KeyFunc        func(*gin.Context) string
	OnLimitReached func(*gin.Context)
}

// DefaultRateLimitConfig limits by client IP.
func DefaultRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{
		Limit:  100,
		Window: time.Minute,
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

type bucket struct {
	tokens    int
	lastReset time.Time
}

type rateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	config  *RateLimitConfig
}

func newRateLimiter(config *RateLimitConfig) *rateLimiter {
	rl := &rateLimiter{buckets: make(map[string]*bucket), config: config}
	go rl.cleanup()
	return rl
}

func (rl *rateLimiter) allow(key string) (bool, int, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b, exists := rl.buckets[key]
	if !exists {
		rl.buckets[key] = &bucket{tokens: rl.config.Limit - 1, lastReset: now}
		return true, rl.config.Limit - 1, rl.config.Window
	}

	if now.Sub(b.lastReset) >= rl.config.Window {
		b.tokens = rl.config.Limit - 1
		b.lastReset = now
		return true, b.tokens, rl.config.Window
	}

	if b.tokens <= 0 {
		return false, 0, rl.config.Window - now.Sub(b.lastReset)
	}

	b.tokens--
	return true, b.tokens, rl.config.Window - now.Sub(b.lastReset)
}

func (rl *rateLimiter) cleanup() {
	ticker := time.NewTicker(rl.config.Window * 2)
	defer ticker.Stop()
	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for key, b := range rl.buckets {
			if now.Sub(b.lastReset) > rl.config.Window*2 {
				delete(rl.buckets, key)
			}
		}
		rl.mu.Unlock()
	}
}

// RateLimit enforces config.Limit requests per config.Window per key,
// rejecting with 429 once exhausted.
func RateLimit(config *RateLimitConfig) gin.HandlerFunc {
	if config == nil {
		config = DefaultRateLimitConfig()
	}
	limiter := newRateLimiter(config)

	return func(c *gin.Context) {
		key := config.KeyFunc(c)
		allowed, remaining, retryAfter := limiter.allow(key)

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.Itoa(int(time.Now().Add(retryAfter).Unix())))

		if !allowed {
			retrySeconds := int(retryAfter.Seconds())
			if retrySeconds < 1 {
				retrySeconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(retrySeconds))

			if config.OnLimitReached != nil {
				config.OnLimitReached(c)
			}

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error": gin.H{
					"code":        "TOO_MANY_REQUESTS",
					"message":     "rate limit exceeded, try again later",
					"retry_after": retrySeconds,
				},
				"request_id": GetRequestID(c),
				"timestamp":  time.Now().UTC(),
			})
			return
		}

		c.Next()
	}
}

// TransactionRateLimit applies a stricter limit to the three mutating
// wallet endpoints, keyed by the verified account id when available.
func TransactionRateLimit() gin.HandlerFunc {
	return RateLimit(&RateLimitConfig{
		Limit:  30,
		Window: time.Minute,
		KeyFunc: func(c *gin.Context) string {
			if accountID := GetAuthAccountID(c); accountID != "" {
				return "account:" + accountID
			}
			return "ip:" + c.ClientIP()
		},
	})
}
