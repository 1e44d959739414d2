package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/kasir-receipt/internal/presentation/http/dto/response"
	"github.com/sangkips/kasir-receipt/pkg/utils"
)

// Context keys set by AuthMiddleware.
const (
	UserIDKey      = "user_id"
	CashierNameKey = "cashier_name"
	UserRolesKey   = "user_roles"
)

// AuthMiddleware creates a JWT authentication middleware
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.Subject)
		c.Set(CashierNameKey, claims.Name)
		c.Set(UserRolesKey, claims.Roles)

		c.Next()
	}
}

// Subject identifies the caller: the token subject when authenticated,
// otherwise the client IP.
func Subject(c *gin.Context) string {
	if id := c.GetString(UserIDKey); id != "" {
		return id
	}
	return c.ClientIP()
}
