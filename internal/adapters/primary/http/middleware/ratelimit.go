package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiterEntry tracks one client's token bucket and when it was last used.
type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*limiterEntry
	rps     rate.Limit
	burst   int
}

const limiterIdleEviction = 10 * time.Minute

// RateLimit applies a per-client token bucket. Authenticated requests are
// keyed by user id, anonymous ones by client IP.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	rl := &rateLimiter{
		clients: make(map[string]*limiterEntry),
		rps:     rate.Limit(rps),
		burst:   burst,
	}

	return func(c *gin.Context) {
		key := c.GetString(ContextUserID)
		if key == "" {
			key = c.ClientIP()
		}

		if !rl.allow(key) {
			c.Header("Retry-After", "1")
			abortError(c, http.StatusTooManyRequests, "RATE_LIMITED", "rate limit exceeded")
			return
		}

		c.Next()
	}
}

func (rl *rateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	entry, ok := rl.clients[key]
	if !ok {
		// Piggyback idle eviction on new-client arrivals.
		for k, e := range rl.clients {
			if now.Sub(e.lastSeen) > limiterIdleEviction {
				delete(rl.clients, k)
			}
		}
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.clients[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter.Allow()
}
