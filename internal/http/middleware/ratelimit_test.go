package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/minima-hotel/backoffice-api/internal/auth"
	"github.com/minima-hotel/backoffice-api/internal/config"
	"github.com/minima-hotel/backoffice-api/internal/http/middleware"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func createTestRateLimiter(cfg *config.RateLimitConfig) *middleware.RateLimiter {
	return middleware.NewRateLimiter(cfg, zap.NewNop())
}

func TestRateLimiter_Disabled(t *testing.T) {
	cfg := &config.RateLimitConfig{
		Enabled:           false,
		RequestsPerMinute: 5,
	}

	rl := createTestRateLimiter(cfg)
	handlerCalled := 0

	handler := rl.LimitByIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled++
		w.WriteHeader(http.StatusOK)
	}))

	// Make many requests - should all pass since rate limiting is disabled
	for i := 0; i < 100; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/kpis", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, 100, handlerCalled)
}

func TestRateLimiter_WhitelistedIP(t *testing.T) {
	cfg := &config.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 2,
		WhitelistIPs:      []string{"127.0.0.1"},
		WhitelistPaths:    []string{},
	}

	rl := createTestRateLimiter(cfg)
	handlerCalled := 0

	handler := rl.LimitByIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled++
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/kpis", nil)
		req.RemoteAddr = "127.0.0.1:12345"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, 50, handlerCalled)
}

func TestRateLimiter_WhitelistedHealthPaths(t *testing.T) {
	cfg := &config.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 2,
		WhitelistIPs:      []string{},
		WhitelistPaths:    []string{"/health", "/health/*"},
	}

	rl := createTestRateLimiter(cfg)
	handlerCalled := 0

	handler := rl.LimitByIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled++
		w.WriteHeader(http.StatusOK)
	}))

	// Probes hit these constantly; they must never be throttled
	paths := []string{"/health", "/health/db", "/health/ready"}
	for i := 0; i < 30; i++ {
		req := httptest.NewRequest(http.MethodGet, paths[i%len(paths)], nil)
		req.RemoteAddr = "192.168.1.1:12345"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, 30, handlerCalled)
}

func TestRateLimiter_LimitExceeded(t *testing.T) {
	cfg := &config.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 5,
		WhitelistIPs:      []string{},
		WhitelistPaths:    []string{},
	}

	rl := createTestRateLimiter(cfg)

	handler := rl.LimitByIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	okCount := 0
	rateLimitedCount := 0

	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/comparison", nil)
		req.RemoteAddr = "192.168.1.100:12345"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code == http.StatusOK {
			okCount++
		} else if w.Code == http.StatusTooManyRequests {
			rateLimitedCount++
			assert.NotEmpty(t, w.Header().Get("Retry-After"))
		}
	}

	assert.Greater(t, okCount, 0, "Some requests should succeed")
	assert.Greater(t, rateLimitedCount, 0, "Some requests should be rate limited")
}

func TestRateLimiter_DifferentIPsIndependent(t *testing.T) {
	cfg := &config.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 3,
		WhitelistIPs:      []string{},
		WhitelistPaths:    []string{},
	}

	rl := createTestRateLimiter(cfg)

	handler := rl.LimitByIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	ips := []string{"192.168.1.1:12345", "192.168.1.2:12345", "192.168.1.3:12345"}

	for _, ip := range ips {
		okCount := 0
		for i := 0; i < 3; i++ {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/kpis", nil)
			req.RemoteAddr = ip
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			if w.Code == http.StatusOK {
				okCount++
			}
		}
		assert.Greater(t, okCount, 0, "IP %s should get successful requests", ip)
	}
}

func TestRateLimiter_XForwardedFor(t *testing.T) {
	cfg := &config.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 3,
		WhitelistIPs:      []string{"10.0.0.1"},
		WhitelistPaths:    []string{},
	}

	rl := createTestRateLimiter(cfg)
	handlerCalled := 0

	handler := rl.LimitByIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled++
		w.WriteHeader(http.StatusOK)
	}))

	// Request with whitelisted IP in X-Forwarded-For
	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/kpis", nil)
		req.RemoteAddr = "192.168.1.1:12345"          // Proxy IP
		req.Header.Set("X-Forwarded-For", "10.0.0.1") // Real client IP (whitelisted)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, 20, handlerCalled)
}

func TestRateLimiter_AuthenticatedUserLimit(t *testing.T) {
	cfg := &config.RateLimitConfig{
		Enabled:               true,
		RequestsPerMinute:     2,  // Low limit for unauthenticated
		RequestsPerMinuteAuth: 10, // Higher limit for authenticated
		WhitelistIPs:          []string{},
		WhitelistPaths:        []string{},
	}

	rl := createTestRateLimiter(cfg)

	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	userCtx := &auth.UserContext{
		UserID:      uuid.New(),
		DisplayName: "Front Desk Manager",
		Email:       "manager@minimahotel.example",
		Roles:       []auth.Role{auth.RoleManager},
	}

	okCount := 0

	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/kpis", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		req = req.WithContext(auth.WithUserContext(context.Background(), userCtx))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code == http.StatusOK {
			okCount++
		}
	}

	assert.Greater(t, okCount, 2, "Authenticated users should have higher limit")
}

func TestRateLimiter_ServiceTier(t *testing.T) {
	cfg := &config.RateLimitConfig{
		Enabled:                  true,
		RequestsPerMinute:        2,
		RequestsPerMinuteAuth:    2,
		RequestsPerMinuteService: 50,
		WhitelistIPs:             []string{},
		WhitelistPaths:           []string{},
	}

	rl := createTestRateLimiter(cfg)

	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// One API key carries traffic for every PMS terminal, so the
	// integration gets a much larger budget than a dashboard user.
	serviceCtx := &auth.UserContext{
		UserID:      uuid.New(),
		DisplayName: "PMS Integration",
		Roles:       []auth.Role{auth.RoleAPIService},
	}

	okCount := 0
	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/refresh", nil)
		req.RemoteAddr = "10.0.5.4:12345"
		req = req.WithContext(auth.WithUserContext(context.Background(), serviceCtx))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code == http.StatusOK {
			okCount++
		}
	}
	assert.Equal(t, 20, okCount, "Service clients should not hit the user budget")

	userCtx := &auth.UserContext{
		UserID: uuid.New(),
		Roles:  []auth.Role{auth.RoleManager},
	}

	limited := 0
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/kpis", nil)
		req.RemoteAddr = "10.0.5.4:12345"
		req = req.WithContext(auth.WithUserContext(context.Background(), userCtx))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code == http.StatusTooManyRequests {
			limited++
		}
	}
	assert.Greater(t, limited, 0, "Dashboard users keep the smaller budget")
}

func TestRateLimiter_RateLimitResponseFormat(t *testing.T) {
	cfg := &config.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 1,
		WhitelistIPs:      []string{},
		WhitelistPaths:    []string{},
	}

	rl := createTestRateLimiter(cfg)

	handler := rl.LimitByIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Exhaust the limit
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/kpis", nil)
	req.RemoteAddr = "192.168.1.200:12345"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/kpis", nil)
	req.RemoteAddr = "192.168.1.200:12345"
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code == http.StatusTooManyRequests {
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
		assert.Contains(t, w.Body.String(), "rate limit exceeded")
	}
}
