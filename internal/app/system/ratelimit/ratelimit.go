// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Limiter throttles requests per key. Each key gets a token bucket that
// holds limit tokens and refills them over duration.
// It is safe for concurrent use.
type Limiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	limit    int           // max requests per window
	duration time.Duration // window duration
	now      func() time.Time
	stop     chan struct{}
	once     sync.Once
}

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// New creates a limiter allowing limit requests per key per duration and
// starts its cleanup loop. Call Close to stop the loop.
func New(limit int, duration time.Duration) *Limiter {
	return newLimiter(limit, duration, time.Now)
}

func newLimiter(limit int, duration time.Duration, now func() time.Time) *Limiter {
	l := &Limiter{
		buckets:  make(map[string]*bucket),
		limit:    limit,
		duration: duration,
		now:      now,
		stop:     make(chan struct{}),
	}
	go l.cleanupLoop(duration * 2)
	return l
}

// bucketFor returns the bucket for key, creating it full. Callers hold mu.
func (l *Limiter) bucketFor(key string, now time.Time) *bucket {
	b, ok := l.buckets[key]
	if !ok {
		every := l.duration / time.Duration(l.limit)
		b = &bucket{lim: rate.NewLimiter(rate.Every(every), l.limit)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b
}

// Allow reports whether a request for key is within the limit and
// consumes a token if so.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	return l.bucketFor(key, now).lim.AllowN(now, 1)
}

// Remaining returns how many whole requests key could make right now.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		return l.limit
	}
	if n := int(b.lim.TokensAt(l.now())); n > 0 {
		return n
	}
	return 0
}

// Close stops the cleanup loop. It is safe to call more than once.
func (l *Limiter) Close() {
	l.once.Do(func() { close(l.stop) })
}

// cleanupLoop drops buckets idle for longer than a window; they would be
// full again anyway.
func (l *Limiter) cleanupLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.mu.Lock()
			now := l.now()
			for key, b := range l.buckets {
				if now.Sub(b.lastSeen) > l.duration {
					delete(l.buckets, key)
				}
			}
			l.mu.Unlock()
		}
	}
}

// Middleware rejects requests with 429 once the client IP has used up its
// window. Every request it lets through costs one upstream report fetch.
// trustProxy selects whether the client IP may come from proxy headers.
func Middleware(l *Limiter, trustProxy bool, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r, trustProxy)
			allowed := l.Allow(ip)
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(l.Remaining(ip)))
			if !allowed {
				logger.Warn("report fetch rate limited",
					zap.String("ip", ip),
					zap.String("path", r.URL.Path))
				w.Header().Set("Retry-After", retryAfter(l.duration))
				http.Error(w, "Demasiadas consultas. Espere un momento antes de actualizar.", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func retryAfter(d time.Duration) string {
	secs := int(d / time.Second)
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

// ClientIP extracts the client IP from an HTTP request.
//
// X-Forwarded-For and X-Real-IP are honored only when trustProxy is set,
// that is when the service runs behind a proxy that overwrites them.
// Otherwise any client could pick a fresh key per request.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
				return ip
			}
		}
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return strings.TrimSpace(xri)
		}
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr might not have a port
		return r.RemoteAddr
	}
	return ip
}
