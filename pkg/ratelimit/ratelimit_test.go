package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRateLimitType(t *testing.T) {
	cases := map[string]RateLimitType{
		"/health":                                  RateLimitTypeHealth,
		"/api/v1/admin/titles/:id/sessions/ensure": RateLimitTypeScheduling,
		"/api/v1/admin/cinemas/:id/halls":          RateLimitTypeAdmin,
		"/api/v1/admin/jobs/coverage":              RateLimitTypeAdmin,
		"/api/v1/titles/:id/sessions":              RateLimitTypePublic,
		"/api/v1/venue-templates/:name/layout":     RateLimitTypePublic,
		"/api/v1/halls/:id/layout":                 RateLimitTypePublic,
		"/api/v1/something":                        RateLimitTypeDefault,
	}

	for path, want := range cases {
		assert.Equal(t, want, getRateLimitType(path), path)
	}
}

func testConfig() *Config {
	return &Config{
		Enabled:            true,
		WindowDuration:     time.Minute,
		DefaultRequests:    60,
		PublicRequests:     100,
		AdminRequests:      200,
		SchedulingRequests: 10,
		HealthRequests:     300,
	}
}

func TestIsAllowed_WithoutRedis(t *testing.T) {
	limiter := NewRateLimiter(nil, testConfig())

	res, err := limiter.IsAllowed(context.Background(), "10.0.0.1", RateLimitTypeScheduling)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 10, res.Limit)
	assert.Equal(t, 10, res.Remaining)
}

func TestMiddleware_SetsHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(Middleware(NewRateLimiter(nil, testConfig())))
	engine.GET("/api/v1/titles/:id/sessions", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api/v1/titles/abc/sessions", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "100", rec.Header().Get("X-RateLimit-Limit"))
}
