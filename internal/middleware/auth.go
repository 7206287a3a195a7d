package middleware

import (
	"codeverse_backend/internal/config"
	"codeverse_backend/internal/util"
	"codeverse_backend/pkg/logger"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware resolves the participant identity from a bearer token. The
// token carries nothing but identity; progress is always read from the store.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}
		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			util.Error(c, http.StatusUnauthorized, util.ErrIdentityMissing.Error())
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			logger.Log.Debug("JWT rejected", zap.Error(err))
			util.Error(c, http.StatusUnauthorized, util.ErrIdentityMissing.Error())
			c.Abort()
			return
		}

		c.Set(util.ContextKeyClaims, claims)
		c.Next()
	}
}

// AdminKeyMiddleware guards administrative routes with a shared key. An
// empty configured key disables them.
func AdminKeyMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.Admin.Key == "" {
			util.Forbidden(c)
			c.Abort()
			return
		}

		given := c.GetHeader(util.AdminKeyHeader)
		if subtle.ConstantTimeCompare([]byte(given), []byte(cfg.Admin.Key)) != 1 {
			util.Unauthorized(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
