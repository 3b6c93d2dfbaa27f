package middleware

import (
	"net/http"
	"sync"
	"time"

	"garagedesk/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ipWindow is a fixed-window per-IP request counter. Each limiter instance
// owns its own map; a background loop purges idle IPs so the maps cannot
// grow without bound.
type ipWindow struct {
	limit  int
	window time.Duration

	mu      sync.Mutex
	counts  map[string]int
	resetAt map[string]time.Time
}

var (
	limitersMu sync.Mutex
	limiters   []*ipWindow
)

func newIPWindow(limit int, window time.Duration) *ipWindow {
	w := &ipWindow{
		limit:   limit,
		window:  window,
		counts:  make(map[string]int),
		resetAt: make(map[string]time.Time),
	}
	limitersMu.Lock()
	limiters = append(limiters, w)
	limitersMu.Unlock()
	return w
}

// allow counts one request for ip and reports whether it is within the limit.
// The second return is when the current window ends.
func (w *ipWindow) allow(ip string) (bool, time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	end, ok := w.resetAt[ip]
	if !ok || now.After(end) {
		end = now.Add(w.window)
		w.resetAt[ip] = end
		w.counts[ip] = 0
	}
	w.counts[ip]++
	return w.counts[ip] <= w.limit, end
}

func (w *ipWindow) purge(now time.Time) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := 0
	for ip, end := range w.resetAt {
		if now.After(end) {
			delete(w.resetAt, ip)
			delete(w.counts, ip)
			n++
		}
	}
	return n
}

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	w := newIPWindow(20, time.Minute)
	return func(c *gin.Context) {
		if ok, _ := w.allow(c.ClientIP()); !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Too many login attempts. Try again in 1 minute."))
			return
		}
		c.Next()
	}
}

// RateLimiter returns a general-purpose per-IP limiter. It also guards the
// unauthenticated payment QR endpoint with a tighter budget.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	w := newIPWindow(limit, window)
	return func(c *gin.Context) {
		ok, end := w.allow(c.ClientIP())
		if !ok {
			c.Header("Retry-After", end.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Too many requests. Try again in a moment."))
			return
		}
		c.Next()
	}
}

const purgeInterval = 5 * time.Minute

func init() {
	go purgeLoop()
}

func purgeLoop() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		total := 0
		limitersMu.Lock()
		active := limiters
		limitersMu.Unlock()
		for _, w := range active {
			total += w.purge(now)
		}
		if total > 0 {
			log.Debug().Int("entries_purged", total).Msg("rate limiter maps purged")
		}
	}
}
