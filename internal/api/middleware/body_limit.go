package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maximiza-sistemas/edu-backend/pkg/response"
)

// BodyLimit caps the request body at maxBytes. A declared Content-Length
// above the cap is refused with 413 and message before the handler runs;
// chunked bodies are cut by MaxBytesReader and the handler reports the 413.
func BodyLimit(maxBytes int64, message string) gin.HandlerFunc {
	if maxBytes <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			// the client may still be sending; do not keep the connection
			c.Header("Connection", "close")
			response.Abort(c, http.StatusRequestEntityTooLarge, message)
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
