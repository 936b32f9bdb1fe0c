package handler

import (
	"errors"
	"io"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/maximiza-sistemas/edu-backend/internal/api/middleware"
	"github.com/maximiza-sistemas/edu-backend/internal/model"
	"github.com/maximiza-sistemas/edu-backend/internal/service"
	apperrors "github.com/maximiza-sistemas/edu-backend/pkg/errors"
	"github.com/maximiza-sistemas/edu-backend/pkg/response"
)

// PostgreSQL error codes mapped to client errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgInvalidTextRepr     = "22P02"
)

// Responder writes error responses. Unexpected errors are logged with a
// stack, which is echoed in the body only when exposeStack is set.
type Responder struct {
	logger      *zap.Logger
	exposeStack bool
}

// NewResponder creates a Responder.
func NewResponder(logger *zap.Logger, exposeStack bool) *Responder {
	return &Responder{logger: logger, exposeStack: exposeStack}
}

// Fail maps err to a status and {error} body.
func (r *Responder) Fail(c *gin.Context, err error) {
	if e, ok := apperrors.As(err); ok && e.Kind != apperrors.KindInternal {
		response.Error(c, e.Status(), e.Message)
		return
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			response.Error(c, http.StatusConflict, apperrors.MsgDuplicate)
			return
		case pgForeignKeyViolation:
			response.Error(c, http.StatusBadRequest, apperrors.MsgInvalidRef)
			return
		case pgInvalidTextRepr:
			response.Error(c, http.StatusBadRequest, apperrors.MsgInvalidFormat)
			return
		}
	}

	message := apperrors.MsgInternal
	if e, ok := apperrors.As(err); ok {
		message = e.Message
	}

	stack := string(debug.Stack())
	r.logger.Error("request error",
		zap.Error(err),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", c.GetString(middleware.CtxRequestID)),
		zap.String("stack", stack),
	)

	if r.exposeStack {
		response.ErrorWithStack(c, http.StatusInternalServerError, message, err.Error()+"\n"+stack)
		return
	}
	response.Error(c, http.StatusInternalServerError, message)
}

// ── binding ──

var errBodyTooLarge = apperrors.New(apperrors.KindTooLarge, apperrors.MsgBodyTooLarge)

// bindError translates a gin binding failure into a client error.
func bindError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errBodyTooLarge
	}
	if errors.Is(err, model.ErrInvalidRole) {
		return service.ErrInvalidRole
	}
	if errors.Is(err, model.ErrInvalidBookType) {
		return service.ErrInvalidBookType
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			switch {
			case fe.Tag() == "role":
				return service.ErrInvalidRole
			case strings.Contains(fe.Tag(), "booktype"):
				return service.ErrInvalidBookType
			}
		}
	}
	return apperrors.BadRequest(apperrors.MsgInvalidBody)
}

// bindJSON decodes the body into obj. An empty body leaves obj zeroed so
// the service can report which fields are missing.
func bindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return bindError(err)
	}
	return nil
}

func bindQuery(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		return bindError(err)
	}
	return nil
}
