package kit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func limited(l *IPRateLimiter) http.Handler {
	return l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
}

func hit(h http.Handler, remote, xff string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/products", nil)
	r.RemoteAddr = remote
	if xff != "" {
		r.Header.Set("X-Forwarded-For", xff)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestIPRateLimiter_LimitAndWindow(t *testing.T) {
	now := time.Date(2025, 12, 30, 12, 0, 0, 0, time.UTC)
	l := NewIPRateLimiter(2, time.Minute)
	l.now = func() time.Time { return now }
	h := limited(l)

	assert.Equal(t, http.StatusNoContent, hit(h, "10.0.0.1:5000", "").Code)
	assert.Equal(t, http.StatusNoContent, hit(h, "10.0.0.1:5001", "").Code)

	w := hit(h, "10.0.0.1:5002", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	// another client has its own budget
	assert.Equal(t, http.StatusNoContent, hit(h, "10.0.0.2:5000", "").Code)

	now = now.Add(61 * time.Second)
	assert.Equal(t, http.StatusNoContent, hit(h, "10.0.0.1:5003", "").Code)
}

func TestIPRateLimiter_Disabled(t *testing.T) {
	h := limited(NewIPRateLimiter(0, time.Minute))

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusNoContent, hit(h, "10.0.0.1:5000", "").Code)
	}
}

func TestIPRateLimiter_ForwardedFor(t *testing.T) {
	h := limited(NewIPRateLimiter(1, time.Minute))

	assert.Equal(t, http.StatusNoContent, hit(h, "10.0.0.9:1", "203.0.113.7, 10.0.0.9").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "10.0.0.8:1", "203.0.113.7").Code)
	assert.Equal(t, http.StatusNoContent, hit(h, "10.0.0.9:1", "").Code)
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	r.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", clientIP(r))

	r.RemoteAddr = "not-an-addr"
	assert.Equal(t, "not-an-addr", clientIP(r))

	r.Header.Set("X-Forwarded-For", " 198.51.100.2 ,10.0.0.1")
	assert.Equal(t, "198.51.100.2", clientIP(r))
}
