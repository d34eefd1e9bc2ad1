package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitMiddleware(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	middleware := RateLimitMiddleware(nil, detector)

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	ip := "192.168.1.100"
	req := httptest.NewRequest("GET", "/test", nil)
	req.RemoteAddr = ip + ":1234"

	for i := 0; i < RateLimitRequests; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	detector.mu.Lock()
	count := detector.requestCountByIP[ip]
	detector.mu.Unlock()
	assert.Equal(t, RateLimitRequests+1, count)

	// A different client is unaffected
	other := httptest.NewRequest("GET", "/test", nil)
	other.RemoteAddr = "10.0.0.7:5555"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSuspiciousActivityDetector_WindowReset(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	detector := newDetector(time.Minute, 2, clock)

	assert.True(t, detector.RecordRequest("1.2.3.4"))
	assert.True(t, detector.RecordRequest("1.2.3.4"))
	assert.False(t, detector.RecordRequest("1.2.3.4"))

	now = now.Add(61 * time.Second)
	assert.True(t, detector.RecordRequest("1.2.3.4"), "counter should reset after the window")
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name           string
		remoteAddr     string
		forwarded      string
		trustedProxies []string
		expected       string
	}{
		{"direct connection", "203.0.113.9:4000", "", nil, "203.0.113.9"},
		{"untrusted forwarded header ignored", "203.0.113.9:4000", "198.51.100.1", nil, "203.0.113.9"},
		{"trusted proxy uses rightmost hop", "10.0.0.1:4000", "198.51.100.1, 198.51.100.2", []string{"10.0.0.1"}, "198.51.100.2"},
		{"unparseable remote addr", "garbage", "", nil, "garbage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set(HeaderForwardedFor, tt.forwarded)
			}
			assert.Equal(t, tt.expected, extractIP(req, tt.trustedProxies))
		})
	}
}
