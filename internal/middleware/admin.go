package middleware

import (
	"net/http"

	"github.com/codecraft/institute-backend/internal/common"
	"github.com/gin-gonic/gin"
)

// RequireAdmin checks that the authenticated user has the admin role
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			common.ErrorResponse(c, http.StatusForbidden, "관리자 권한이 필요합니다", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
