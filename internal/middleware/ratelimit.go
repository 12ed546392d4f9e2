package middleware

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

var errRateLimited = errors.New("rate limit exceeded")

type client struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// clientLimiters keeps one token bucket per client key. Entries idle for
// longer than idle are evicted, at most once per idle period.
type clientLimiters struct {
	mu        sync.Mutex
	every     rate.Limit
	burst     int
	idle      time.Duration
	now       func() time.Time
	lastSweep time.Time
	clients   map[string]*client
}

func newClientLimiters(limit int, window time.Duration) *clientLimiters {
	idle := window
	if idle < time.Minute {
		idle = time.Minute
	}
	return &clientLimiters{
		every:   rate.Every(window / time.Duration(limit)),
		burst:   limit,
		idle:    idle,
		now:     time.Now,
		clients: make(map[string]*client),
	}
}

// allow takes one token from key's bucket.
func (l *clientLimiters) allow(key string) bool {
	now := l.now()

	l.mu.Lock()
	if now.Sub(l.lastSweep) >= l.idle {
		l.evict(now)
		l.lastSweep = now
	}
	c, ok := l.clients[key]
	if !ok {
		c = &client{lim: rate.NewLimiter(l.every, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now
	l.mu.Unlock()

	return c.lim.AllowN(now, 1)
}

func (l *clientLimiters) evict(now time.Time) {
	for k, c := range l.clients {
		if now.Sub(c.lastSeen) >= l.idle {
			delete(l.clients, k)
		}
	}
}

// RateLimiter allows bursts of up to limit requests per client IP, refilled
// evenly over window, and answers 429 beyond that. A non-positive limit
// disables it.
//
// The buckets live in process memory; replicas limit independently.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	if limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	cl := newClientLimiters(limit, window)
	return func(c *gin.Context) {
		if !cl.allow(c.ClientIP()) {
			AbortWithError(c, http.StatusTooManyRequests, "rate limit exceeded", errRateLimited)
			return
		}
		c.Next()
	}
}
