package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/codecraft/institute-backend/internal/common"
	"github.com/codecraft/institute-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
)

const (
	ctxUserID    = "userID"
	ctxUserName  = "userName"
	ctxUserEmail = "userEmail"
	ctxRole      = "role"
)

// JWTAuth JWT authentication middleware
func JWTAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			common.ErrorResponse(c, http.StatusUnauthorized, "Missing authorization header", nil)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			common.ErrorResponse(c, http.StatusUnauthorized, "Invalid authorization header format", nil)
			c.Abort()
			return
		}

		claims, err := jwtManager.VerifyToken(strings.TrimSpace(parts[1]))
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				common.ErrorResponse(c, http.StatusUnauthorized, "Token expired", err)
			} else {
				common.ErrorResponse(c, http.StatusUnauthorized, "Invalid token", err)
			}
			c.Abort()
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxUserName, claims.Name)
		c.Set(ctxUserEmail, claims.Email)
		c.Set(ctxRole, claims.Role)

		c.Next()
	}
}

// GetUserID extracts user ID from context
func GetUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// GetUserName extracts display name from context
func GetUserName(c *gin.Context) string {
	return c.GetString(ctxUserName)
}

// GetUserEmail extracts email from context
func GetUserEmail(c *gin.Context) string {
	return c.GetString(ctxUserEmail)
}

// IsAdmin reports whether the authenticated user has the admin role
func IsAdmin(c *gin.Context) bool {
	return c.GetString(ctxRole) == jwt.RoleAdmin
}
