package middleware

import (
	"github.com/gin-gonic/gin"
)

const hstsValue = "max-age=15552000; includeSubDomains"

// SecurityHeaders hardens /api responses, which are never framed or cached.
// /uploads is mounted outside this group so covers and PDFs stay embeddable.
// Strict-Transport-Security is sent only when hsts is set.
func SecurityHeaders(hsts bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		h.Set("Cross-Origin-Resource-Policy", "same-site")
		h.Set("Cache-Control", "no-store")
		if hsts {
			h.Set("Strict-Transport-Security", hstsValue)
		}

		c.Next()
	}
}
