package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"outlay/internal/config"
	"outlay/internal/store/memory"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestOriginAllowed(t *testing.T) {
	allowlist := []string{"https://app.example.com", "https://admin.example.com"}

	tests := []struct {
		name   string
		origin string
		want   bool
	}{
		{"no origin header", "", true},
		{"allow-listed origin", "https://app.example.com", true},
		{"allow-list match is case-insensitive", "https://APP.Example.COM", true},
		{"second allow-list entry", "https://admin.example.com", true},
		{"vercel preview deployment", "https://outlay-git-main-someone.vercel.app", true},
		{"netlify deployment", "https://outlay.netlify.app", true},
		{"trusted suffix is case-insensitive", "https://demo.VERCEL.app", true},
		{"suffix requires a subdomain dot", "https://notvercel.app", false},
		{"unlisted origin", "https://evil.example.net", false},
		{"lookalike of an allow-listed origin", "https://app.example.com.evil.net", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, originAllowed(tt.origin, allowlist))
		})
	}

	// An empty allow-list still admits the trusted platform suffixes.
	assert.True(t, originAllowed("https://x.vercel.app", nil))
	assert.False(t, originAllowed("https://app.example.com", nil))
}

func TestCORSMiddleware(t *testing.T) {
	cfg := config.Config{
		Port:        8080,
		JWTSecret:   "test-secret",
		CORSOrigins: []string{"https://app.example.com"},
	}
	s := NewServer(cfg, memory.NewStore(), zap.NewNop())

	// Test case 1: requests without an Origin header skip CORS entirely.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	// Test case 2: an allowed origin is echoed back.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Values("Vary"), "Origin")

	// Test case 3: preflight requests short-circuit with 204.
	req = httptest.NewRequest(http.MethodOptions, "/expenses", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")

	// Test case 4: a rejected origin gets a descriptive error naming it.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.net")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "https://evil.example.net")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	// Test case 5: trusted platform subdomains work without configuration.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://preview-123.vercel.app")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://preview-123.vercel.app", rec.Header().Get("Access-Control-Allow-Origin"))
}
