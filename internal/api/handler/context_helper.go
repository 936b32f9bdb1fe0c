package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/maximiza-sistemas/edu-backend/internal/api/middleware"
	"github.com/maximiza-sistemas/edu-backend/pkg/response"
)

// MustGetUserID reads the caller id injected by JWTAuth.
// On false a 401 has been written and the handler should return.
func MustGetUserID(c *gin.Context) (string, bool) {
	s := c.GetString(middleware.CtxUserID)
	if s == "" {
		response.Unauthorized(c, middleware.MsgNotAuthenticated)
		return "", false
	}
	return s, true
}
