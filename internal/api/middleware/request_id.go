package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	CtxRequestID    = "request_id"
	requestIDHeader = "X-Request-ID"
	// longer client-supplied ids are replaced to keep log lines bounded
	requestIDMaxLen = 64
)

// RequestID reuses X-Request-ID when sane, otherwise generates a UUID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if rid == "" || len(rid) > requestIDMaxLen {
			rid = uuid.New().String()
		}

		c.Set(CtxRequestID, rid)
		c.Header(requestIDHeader, rid)

		c.Next()
	}
}
