package middleware

import (
	"net/http"
	"strings"

	"vetassist/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JWTAuthAdminMiddleware requires an HS256 bearer token signed with secret and
// carrying role=admin. An empty secret disables the check.
func JWTAuthAdminMiddleware(secret string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "Missing or invalid Authorization header")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		role, err := utils.ExtractRoleFromToken([]byte(secret), tokenString)
		if err != nil {
			logger.Warn("admin token rejected", zap.String("ip", getClientIP(c)), zap.Error(err))
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized admin access")
			return
		}
		if role != utils.RoleAdmin {
			utils.JSONError(c, http.StatusForbidden, "Admin role required")
			return
		}

		c.Set("isAdmin", true)
		c.Next()
	}
}
