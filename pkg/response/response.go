package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Page is the envelope for paginated collections.
type Page struct {
	Data   interface{} `json:"data"`
	Total  int64       `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

// ErrorBody is the flat error shape returned to clients.
type ErrorBody struct {
	Error string `json:"error"`
	Stack string `json:"stack,omitempty"`
}

// MessageBody is returned by operations without a resource payload.
type MessageBody struct {
	Message string `json:"message"`
}

// ── success ──

// OK 200 with the raw payload.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201 with the raw payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// OKPage 200 with a paginated envelope.
func OKPage(c *gin.Context, data interface{}, total int64, limit, offset int) {
	c.JSON(http.StatusOK, Page{
		Data:   data,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// Message 200 with a confirmation message.
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, MessageBody{Message: message})
}

// ── errors ──

// Error writes {error} with the given status.
func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, ErrorBody{Error: message})
}

// ErrorWithStack writes {error, stack}; used outside production only.
func ErrorWithStack(c *gin.Context, httpStatus int, message, stack string) {
	c.JSON(httpStatus, ErrorBody{Error: message, Stack: stack})
}

// Abort writes {error} and stops the handler chain.
func Abort(c *gin.Context, httpStatus int, message string) {
	c.AbortWithStatusJSON(httpStatus, ErrorBody{Error: message})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}
