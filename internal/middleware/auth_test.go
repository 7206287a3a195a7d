package middleware

import (
	"codeverse_backend/internal/config"
	"codeverse_backend/internal/util"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		JWT:   config.JWTConfig{Secret: "0123456789abcdef0123456789abcdef", ExpireTime: time.Hour},
		Admin: config.AdminConfig{Key: "let-me-in"},
	}
}

func TestAuthMiddleware(t *testing.T) {
	cfg := testConfig()
	r := gin.New()
	r.GET("/me", AuthMiddleware(cfg), func(c *gin.Context) {
		email, err := util.CurrentEmail(c)
		require.NoError(t, err)
		c.String(http.StatusOK, email)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := util.GenerateJWT("clint@barton.io", "Clint", cfg.JWT.Secret, time.Hour)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "clint@barton.io", w.Body.String())
}

func TestAdminKeyMiddleware(t *testing.T) {
	cfg := testConfig()
	r := gin.New()
	r.GET("/admin", AdminKeyMiddleware(cfg), func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		name string
		key  string
		want int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong", "nope", http.StatusUnauthorized},
		{"right", "let-me-in", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.key != "" {
				req.Header.Set(util.AdminKeyHeader, tt.key)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}

	disabled := gin.New()
	disabled.GET("/admin", AdminKeyMiddleware(&config.Config{}), func(c *gin.Context) { c.Status(http.StatusOK) })
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(util.AdminKeyHeader, "")
	w := httptest.NewRecorder()
	disabled.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
