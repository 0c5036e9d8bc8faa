package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kryptaroid/lms-career-shiksha/internal/response"
)

// RateLimiter is a per-IP token bucket. Each client gets rate tokens per
// interval; requests spend one token and are rejected with 429 once the
// bucket is empty.
type RateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	rate     int
	interval time.Duration
}

type bucket struct {
	tokens     float64
	lastRefill time.Time
}

// NewRateLimiter creates a RateLimiter allowing rate requests per
// interval per client IP. Idle buckets are evicted in the background.
func NewRateLimiter(rate int, interval time.Duration) *RateLimiter {
	rl := &RateLimiter{
		buckets:  make(map[string]*bucket),
		rate:     rate,
		interval: interval,
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			rl.evictIdle()
		}
	}()

	return rl
}

// Middleware returns a Gin middleware enforcing the limit by client IP.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	perToken := rl.interval / time.Duration(rl.rate)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		rl.mu.Lock()
		b, ok := rl.buckets[ip]
		if !ok {
			b = &bucket{tokens: float64(rl.rate), lastRefill: now}
			rl.buckets[ip] = b
		}

		// Continuous refill: one token per interval/rate elapsed.
		b.tokens += float64(now.Sub(b.lastRefill)) / float64(perToken)
		if b.tokens > float64(rl.rate) {
			b.tokens = float64(rl.rate)
		}
		b.lastRefill = now

		if b.tokens < 1 {
			rl.mu.Unlock()
			response.AbortFail(c, http.StatusTooManyRequests, response.ErrRateLimitExceeded)
			return
		}

		b.tokens--
		rl.mu.Unlock()
		c.Next()
	}
}

func (rl *RateLimiter) evictIdle() {
	cutoff := time.Now().Add(-3 * rl.interval)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, b := range rl.buckets {
		if b.lastRefill.Before(cutoff) {
			delete(rl.buckets, ip)
		}
	}
}
