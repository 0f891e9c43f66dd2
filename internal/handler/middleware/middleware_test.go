//go:build unit

package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"local-deals/internal/domain/user"
	"local-deals/internal/pkg/jwt"
	"local-deals/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(r http.Handler, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestLocalLimiter(t *testing.T) {
	l := newLocalLimiter()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return base }
	limit := PerMinute(60, 2)

	assert.Equal(t, 1, l.allow("k", limit).Allowed)
	assert.Equal(t, 1, l.allow("k", limit).Allowed)
	res := l.allow("k", limit)
	assert.Equal(t, 0, res.Allowed)
	assert.Equal(t, time.Second, res.RetryAfter)
	assert.Equal(t, 1, l.allow("other", limit).Allowed, "keys are independent")

	l.now = func() time.Time { return base.Add(time.Second) }
	assert.Equal(t, 1, l.allow("k", limit).Allowed, "tokens refill over time")

	l.now = func() time.Time { return base.Add(time.Hour) }
	l.allow("fresh", limit)
	assert.NotContains(t, l.limiters, "k", "idle entries are swept")
}

func TestRateLimiter_WithoutRedis(t *testing.T) {
	rl := NewRateLimiter(nil, "auth", PerMinute(60, 1), true)
	r := gin.New()
	r.Use(ErrorHandler())
	r.POST("/login", rl.Handler(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	first := perform(r, http.MethodPost, "/login", nil)
	assert.Equal(t, http.StatusNoContent, first.Code)
	assert.Equal(t, "60", first.Header().Get("X-RateLimit-Limit"))

	second := perform(r, http.MethodPost, "/login", nil)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "1", second.Header().Get("Retry-After"))
	assert.Contains(t, second.Body.String(), "Rate limit exceeded")
}

func TestAuthMiddleware(t *testing.T) {
	svc := jwt.NewService("test-secret-key-for-local-deals", time.Minute, time.Hour)
	m := NewAuthMiddleware(usecase.NewTokenValidator(svc))
	id := uuid.New()
	customer, err := svc.GenerateAccessToken(id, user.RoleCustomer)
	require.NoError(t, err)
	admin, err := svc.GenerateAccessToken(id, user.RoleAdmin)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", m.RequireAuth(), func(c *gin.Context) {
		uid, _ := GetUserID(c)
		c.String(http.StatusOK, uid.String())
	})
	r.GET("/admin", m.RequireAuth(), m.RequireRole(user.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET("/maybe", m.OptionalAuth(), func(c *gin.Context) {
		_, ok := GetPrincipal(c)
		c.String(http.StatusOK, map[bool]string{true: "known", false: "anonymous"}[ok])
	})

	bearer := func(tok string) map[string]string { return map[string]string{"Authorization": "Bearer " + tok} }

	assert.Equal(t, http.StatusUnauthorized, perform(r, http.MethodGet, "/me", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, perform(r, http.MethodGet, "/me", bearer("nope")).Code)

	rec := perform(r, http.MethodGet, "/me", bearer(customer))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id.String(), rec.Body.String())

	assert.Equal(t, http.StatusForbidden, perform(r, http.MethodGet, "/admin", bearer(customer)).Code)
	assert.Equal(t, http.StatusNoContent, perform(r, http.MethodGet, "/admin", bearer(admin)).Code)

	assert.Equal(t, "anonymous", perform(r, http.MethodGet, "/maybe", bearer("nope")).Body.String())
	assert.Equal(t, "known", perform(r, http.MethodGet, "/maybe", bearer(customer)).Body.String())
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/deals/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", m.Handler())

	perform(r, http.MethodGet, "/deals/"+uuid.NewString(), nil)
	m.ExpiredDeals.Add(2)

	rec := perform(r, http.MethodGet, "/metrics", nil)
	body, _ := io.ReadAll(rec.Body)
	text := string(body)
	assert.True(t, strings.Contains(text, `local_deals_http_requests_total{method="GET",route="/deals/:id",status="200"} 1`), text)
	assert.Contains(t, text, "local_deals_deals_expired_total 2")
}
