package server

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"ac_efficiency_calc/config"
)

const (
	maxTrackedClients = 10_000
	clientIdleTimeout = 10 * time.Minute
)

type client struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

// Limiter throttles the calculation endpoints, first against a limit shared
// by every caller and then per client address.
type Limiter struct {
	total      *rate.Limiter
	trustProxy bool

	mu      sync.Mutex
	clients map[string]*client
	rps     rate.Limit
	burst   int
}

func NewLimiter(cfg config.RateLimitConfig) *Limiter {
	return &Limiter{
		total:      rate.NewLimiter(rate.Limit(cfg.GlobalRPS), cfg.GlobalBurst),
		trustProxy: cfg.TrustProxy,
		clients:    make(map[string]*client),
		rps:        rate.Limit(cfg.RPS),
		burst:      cfg.Burst,
	}
}

// Middleware rejects requests over the limit with 429 and a Retry-After hint.
func (l *Limiter) Middleware(metrics *Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(l.clientKey(r)) {
				metrics.RateLimitDropped.Inc()
				w.Header().Set("Retry-After", strconv.Itoa(l.retryAfter()))
				writeJSON(w, http.StatusTooManyRequests, errorResponse{
					RequestID: requestIDFrom(r.Context()),
					Kind:      "rate_limited",
					Error:     "rate limit exceeded",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Allow reports whether one more request from key fits both limits.
func (l *Limiter) Allow(key string) bool {
	if !l.total.Allow() {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	c, ok := l.clients[key]
	if !ok {
		if len(l.clients) >= maxTrackedClients {
			l.evictIdleLocked(now.Add(-clientIdleTimeout))
		}
		c = &client{bucket: rate.NewLimiter(l.rps, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now

	return c.bucket.Allow()
}

func (l *Limiter) evictIdleLocked(before time.Time) {
	for key, c := range l.clients {
		if c.lastSeen.Before(before) {
			delete(l.clients, key)
		}
	}
}

// 次のトークンが補充されるまでの秒数, s
func (l *Limiter) retryAfter() int {
	if l.rps <= 0 {
		return 1
	}
	sec := int(1 / float64(l.rps))
	if sec < 1 {
		return 1
	}
	return sec
}

// clientKey identifies the caller. X-Forwarded-For is client-controlled, so it
// is read only behind a trusted proxy, and then only its last hop, which is
// the address the proxy itself appended.
func (l *Limiter) clientKey(r *http.Request) string {
	if l.trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			hops := strings.Split(xff, ",")
			if last := strings.TrimSpace(hops[len(hops)-1]); last != "" {
				return last
			}
		}
	}

	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
