package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestLimiter(t *testing.T, limit int, d time.Duration) (*Limiter, *time.Time) {
	t.Helper()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	l := newLimiter(limit, d, func() time.Time { return now })
	t.Cleanup(l.Close)
	return l, &now
}

func TestAllow_WindowResets(t *testing.T) {
	l, now := newTestLimiter(t, 2, time.Minute)

	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.Equal(t, 0, l.Remaining("a"))

	// Keys are independent.
	assert.True(t, l.Allow("b"))
	assert.Equal(t, 1, l.Remaining("b"))

	*now = now.Add(time.Minute + time.Second)
	assert.Equal(t, 2, l.Remaining("a"))
	assert.True(t, l.Allow("a"))
}

func TestClose_Idempotent(t *testing.T) {
	l := New(1, time.Minute)
	l.Close()
	l.Close()
}

func TestMiddleware(t *testing.T) {
	l, _ := newTestLimiter(t, 1, 30*time.Second)
	calls := 0
	h := Middleware(l, false, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "30", rec.Header().Get("Retry-After"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, 1, calls)
}

func TestMiddleware_IgnoresForwardedHeadersByDefault(t *testing.T) {
	l, _ := newTestLimiter(t, 1, time.Minute)
	h := Middleware(l, false, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	codes := []int{}
	for _, fake := range []string{"1.1.1.1", "2.2.2.2", "3.3.3.3"} {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		req.Header.Set("X-Forwarded-For", fake)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{200, 429, 429}, codes, "rotating X-Forwarded-For must not reset the quota")
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remote     string
		trustProxy bool
		want       string
	}{
		{"forwarded first hop", map[string]string{"X-Forwarded-For": "1.2.3.4, 10.0.0.1"}, "10.0.0.9:80", true, "1.2.3.4"},
		{"real ip", map[string]string{"X-Real-IP": " 5.6.7.8 "}, "10.0.0.9:80", true, "5.6.7.8"},
		{"forwarded untrusted", map[string]string{"X-Forwarded-For": "1.2.3.4"}, "10.0.0.9:80", false, "10.0.0.9"},
		{"real ip untrusted", map[string]string{"X-Real-IP": "5.6.7.8"}, "10.0.0.9:80", false, "10.0.0.9"},
		{"remote addr", nil, "9.9.9.9:1234", true, "9.9.9.9"},
		{"remote without port", nil, "9.9.9.9", false, "9.9.9.9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientIP(req, tt.trustProxy))
		})
	}
}
