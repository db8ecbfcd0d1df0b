package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vetassist/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func get(r http.Handler, header, value string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if header != "" {
		req.Header.Set(header, value)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware(t *testing.T) {
	r := newEngine(RateLimitMiddleware(2, zap.NewNop()))

	assert.Equal(t, http.StatusOK, get(r, "X-Forwarded-For", "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, get(r, "X-Forwarded-For", "10.0.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, "X-Forwarded-For", "10.0.0.1").Code)

	// A different client has its own budget.
	assert.Equal(t, http.StatusOK, get(r, "X-Forwarded-For", "10.0.0.2").Code)
}

func TestGetClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name   string
		header string
		value  string
		want   string
	}{
		{"forwarded list", "X-Forwarded-For", "203.0.113.9, 10.0.0.1", "203.0.113.9"},
		{"real ip", "X-Real-IP", " 198.51.100.4 ", "198.51.100.4"},
		{"remote addr", "", "", "192.0.2.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				c.Request.Header.Set(tt.header, tt.value)
			}
			assert.Equal(t, tt.want, getClientIP(c))
		})
	}
}

func TestJWTAuthAdminMiddleware(t *testing.T) {
	const secret = "s3cret"

	t.Run("disabled without secret", func(t *testing.T) {
		r := newEngine(JWTAuthAdminMiddleware("", zap.NewNop()))
		assert.Equal(t, http.StatusOK, get(r, "", "").Code)
	})

	r := newEngine(JWTAuthAdminMiddleware(secret, zap.NewNop()))

	t.Run("missing header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, get(r, "", "").Code)
	})

	t.Run("bad signature", func(t *testing.T) {
		token, err := utils.GenerateToken([]byte("other"), "ops", utils.RoleAdmin, time.Hour)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, get(r, "Authorization", "Bearer "+token).Code)
	})

	t.Run("wrong role", func(t *testing.T) {
		token, err := utils.GenerateToken([]byte(secret), "ops", "viewer", time.Hour)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, get(r, "Authorization", "Bearer "+token).Code)
	})

	t.Run("admin", func(t *testing.T) {
		token, err := utils.GenerateToken([]byte(secret), "ops", utils.RoleAdmin, time.Hour)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, get(r, "Authorization", "Bearer "+token).Code)
	})
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := newEngine(RequestLogger(zap.New(core)))

	get(r, "", "")
	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/ping", fields["path"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
}
