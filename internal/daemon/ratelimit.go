package daemon

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"dvdshop/internal/config"
	"dvdshop/internal/services"
)

// visitor tracks the limiter and last seen time for a client IP.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiter allows Max requests per window per client IP, refilled
// continuously. Allow-listed addresses bypass it.
type rateLimiter struct {
	limit  rate.Limit
	burst  int
	window time.Duration
	allow  map[string]struct{}
	now    func() time.Time

	mu       sync.Mutex
	visitors map[string]*visitor

	stop     chan struct{}
	stopOnce sync.Once
}

func newRateLimiter(cfg config.RateLimit, window time.Duration) *rateLimiter {
	rl := newRateLimiterWithClock(cfg, window, time.Now)
	go rl.sweepLoop(time.Minute)
	return rl
}

func newRateLimiterWithClock(cfg config.RateLimit, window time.Duration, now func() time.Time) *rateLimiter {
	allow := make(map[string]struct{}, len(cfg.AllowList))
	for _, ip := range cfg.AllowList {
		allow[normalizeIP(ip)] = struct{}{}
	}
	return &rateLimiter{
		limit:    rate.Every(window / time.Duration(cfg.Max)),
		burst:    cfg.Max,
		window:   window,
		allow:    allow,
		now:      now,
		visitors: make(map[string]*visitor),
		stop:     make(chan struct{}),
	}
}

func (rl *rateLimiter) visitorFor(ip string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// take consumes a token for ip. When none is available it reports how long
// until one will be.
func (rl *rateLimiter) take(ip string) (allowed bool, remaining int, retryAfter time.Duration) {
	if _, ok := rl.allow[ip]; ok {
		return true, rl.burst, 0
	}
	now := rl.now()
	limiter := rl.visitorFor(ip, now)
	res := limiter.ReserveN(now, 1)
	if !res.OK() {
		return false, 0, rl.window
	}
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return false, 0, delay
	}
	return true, int(math.Max(0, math.Floor(limiter.TokensAt(now)))), 0
}

func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, ok := services.ClientIPFromContext(r.Context())
		if !ok {
			ip = clientIP(r)
		}
		allowed, remaining, retryAfter := rl.take(ip)
		h := w.Header()
		h.Set("X-RateLimit-Limit", strconv.Itoa(rl.burst))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if !allowed {
			seconds := int(math.Ceil(retryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			h.Set("Retry-After", strconv.Itoa(seconds))
			writeError(w, nil, http.StatusTooManyRequests,
				fmt.Sprintf("rate limit exceeded, retry in %d seconds", seconds))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// sweep drops visitors idle for longer than the window.
func (rl *rateLimiter) sweep() int {
	idle := max(rl.window, 3*time.Minute)
	now := rl.now()
	rl.mu.Lock()
	defer rl.mu.Unlock()
	removed := 0
	for ip, v := range rl.visitors {
		if now.Sub(v.lastSeen) > idle {
			delete(rl.visitors, ip)
			removed++
		}
	}
	return removed
}

func (rl *rateLimiter) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.sweep()
		}
	}
}

func (rl *rateLimiter) close() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}
