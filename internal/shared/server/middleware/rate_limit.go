package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"glance-backend/internal/shared/server/respond"
)

const (
	// defaultMaxEntries bounds the limiter map; the least recently seen
	// entry is dropped when the cap is exceeded.
	defaultMaxEntries = 500

	// entryTTL is how long an idle entry survives before eviction.
	entryTTL = 5 * time.Minute
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// UserRateLimiter enforces a per-caller token-bucket rate limit. It is
// constructed once and injected into the handlers that need it; the entry
// map is bounded and idle entries are evicted on access.
type UserRateLimiter struct {
	mu         sync.Mutex
	entries    map[string]*limiterEntry
	limit      rate.Limit
	burst      int
	maxEntries int
	lastSweep  time.Time
	now        func() time.Time
}

// NewUserRateLimiter builds a limiter allowing perMinute requests per caller
// with the given burst. now may be nil outside of tests.
func NewUserRateLimiter(perMinute, burst int, now func() time.Time) *UserRateLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	if burst <= 0 {
		burst = perMinute
	}
	if now == nil {
		now = time.Now
	}
	return &UserRateLimiter{
		entries:    make(map[string]*limiterEntry),
		limit:      rate.Limit(float64(perMinute) / 60.0),
		burst:      burst,
		maxEntries: defaultMaxEntries,
		now:        now,
	}
}

// Allow reports whether the caller identified by key may proceed.
func (l *UserRateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweepLocked(now)

	entry, ok := l.entries[key]
	if !ok {
		if len(l.entries) >= l.maxEntries {
			l.evictOldestLocked()
		}
		entry = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

// sweepLocked drops idle entries; runs at most once per minute.
func (l *UserRateLimiter) sweepLocked(now time.Time) {
	if now.Sub(l.lastSweep) < time.Minute {
		return
	}
	l.lastSweep = now
	cutoff := now.Add(-entryTTL)
	for key, entry := range l.entries {
		if entry.lastSeen.Before(cutoff) {
			delete(l.entries, key)
		}
	}
}

func (l *UserRateLimiter) evictOldestLocked() {
	var oldestKey string
	var oldest time.Time
	for key, entry := range l.entries {
		if oldestKey == "" || entry.lastSeen.Before(oldest) {
			oldestKey = key
			oldest = entry.lastSeen
		}
	}
	if oldestKey != "" {
		delete(l.entries, oldestKey)
	}
}

// RateLimit gates requests through the given limiter, keyed by the
// authenticated caller (falling back to client IP).
func RateLimit(limiter *UserRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := UserIDFromContext(c)
		if key == "" {
			key = c.ClientIP()
		}
		if !limiter.Allow(key) {
			c.Header("Retry-After", "60")
			respond.Error(c, http.StatusTooManyRequests, "rate_limited", "Too many requests. Please try again later.", nil)
			return
		}
		c.Next()
	}
}
