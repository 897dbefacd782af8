// Package ratelimiter provides per-client HTTP rate limiting.
package ratelimiter

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Config defines a rate limiting profile.
type Config struct {
	// RequestsPerWindow is the number of requests allowed per window.
	RequestsPerWindow int
	// Window is the time window the budget is spread over.
	Window time.Duration
	// Burst allows short spikes above the steady rate.
	Burst int
}

// PerMinute is a convenience profile of n requests per minute with the full
// budget available as a burst.
func PerMinute(n int) Config {
	return Config{RequestsPerWindow: n, Window: time.Minute, Burst: n}
}

// Limiter tracks one token bucket per client key. Idle entries are evicted
// after three windows to keep the map bounded.
type Limiter struct {
	cfg Config

	mu      sync.Mutex
	clients map[string]*client
}

type client struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

// NewLimiter creates a Limiter with the given profile.
func NewLimiter(cfg Config) *Limiter {
	l := &Limiter{
		cfg:     cfg,
		clients: make(map[string]*client),
	}
	go l.evictLoop()
	return l
}

// Allow reports whether the client identified by key may proceed.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[key]
	if !ok {
		limit := rate.Limit(float64(l.cfg.RequestsPerWindow) / l.cfg.Window.Seconds())
		c = &client{bucket: rate.NewLimiter(limit, l.cfg.Burst)}
		l.clients[key] = c
	}
	c.lastSeen = time.Now()
	return c.bucket.Allow()
}

func (l *Limiter) evictLoop() {
	ticker := time.NewTicker(l.cfg.Window)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-3 * l.cfg.Window)
		l.mu.Lock()
		for key, c := range l.clients {
			if c.lastSeen.Before(cutoff) {
				delete(l.clients, key)
			}
		}
		l.mu.Unlock()
	}
}

// Middleware returns a gin middleware enforcing the profile per client IP.
func Middleware(cfg Config) gin.HandlerFunc {
	l := NewLimiter(cfg)
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			slog.Warn("rate limit exceeded", "remote_addr", c.ClientIP(), "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests, please try again later",
			})
			return
		}
		c.Next()
	}
}
