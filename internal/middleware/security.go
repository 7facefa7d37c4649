package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// SecurityHeaders adds security headers for a JSON API.
// Responses under apiPrefix are never cached since they carry payment state.
func SecurityHeaders(apiPrefix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "no-referrer")

		if strings.HasPrefix(c.Request.URL.Path, apiPrefix) {
			c.Header("Cache-Control", "no-store")
			c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		}

		// HSTS (only over TLS)
		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
