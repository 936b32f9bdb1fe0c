package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/maximiza-sistemas/edu-backend/pkg/errors"
	"github.com/maximiza-sistemas/edu-backend/pkg/response"
)

// Recovery turns a panic into a 500 {error} response. The stack is logged
// and, when exposeStack is set, echoed in the body.
func Recovery(logger *zap.Logger, exposeStack bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			stack := string(debug.Stack())
			logger.Error("panic recovered",
				zap.Any("panic", rec),
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetString(CtxRequestID)),
				zap.String("stack", stack),
			)

			if c.Writer.Written() {
				c.Abort()
				return
			}
			if exposeStack {
				c.Abort()
				response.ErrorWithStack(c, http.StatusInternalServerError, apperrors.MsgInternal, fmt.Sprintf("%v\n%s", rec, stack))
				return
			}
			response.Abort(c, http.StatusInternalServerError, apperrors.MsgInternal)
		}()

		c.Next()
	}
}
