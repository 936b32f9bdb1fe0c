package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maximiza-sistemas/edu-backend/internal/dto"
	"github.com/maximiza-sistemas/edu-backend/internal/service"
	"github.com/maximiza-sistemas/edu-backend/pkg/response"
)

// AssignmentHandler book assignment and progress endpoints.
type AssignmentHandler struct {
	assignmentSvc service.AssignmentService
	resp          *Responder
}

// NewAssignmentHandler creates an AssignmentHandler.
func NewAssignmentHandler(assignmentSvc service.AssignmentService, resp *Responder) *AssignmentHandler {
	return &AssignmentHandler{assignmentSvc: assignmentSvc, resp: resp}
}

// List GET /api/assignments
func (h *AssignmentHandler) List(c *gin.Context) {
	var req dto.AssignmentListRequest
	if err := bindQuery(c, &req); err != nil {
		h.resp.Fail(c, err)
		return
	}

	rows, total, err := h.assignmentSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.resp.Fail(c, err)
		return
	}

	response.OKPage(c, rows, total, req.GetLimit(), req.GetOffset())
}

// Get GET /api/assignments/:id
func (h *AssignmentHandler) Get(c *gin.Context) {
	a, err := h.assignmentSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.resp.Fail(c, err)
		return
	}
	response.OK(c, a)
}

// ListByUser GET /api/assignments/user/:userId
func (h *AssignmentHandler) ListByUser(c *gin.Context) {
	rows, err := h.assignmentSvc.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.resp.Fail(c, err)
		return
	}
	response.OK(c, rows)
}

// ListByBook GET /api/assignments/book/:bookId
func (h *AssignmentHandler) ListByBook(c *gin.Context) {
	rows, err := h.assignmentSvc.ListByBook(c.Request.Context(), c.Param("bookId"))
	if err != nil {
		h.resp.Fail(c, err)
		return
	}
	response.OK(c, rows)
}

// Create POST /api/assignments
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req dto.CreateAssignmentRequest
	if err := bindJSON(c, &req); err != nil {
		h.resp.Fail(c, err)
		return
	}

	a, err := h.assignmentSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.resp.Fail(c, err)
		return
	}

	response.Created(c, a)
}

// UpdateProgress PUT /api/assignments/:id
func (h *AssignmentHandler) UpdateProgress(c *gin.Context) {
	progress, ok := h.bindProgress(c)
	if !ok {
		return
	}

	a, err := h.assignmentSvc.UpdateProgress(c.Request.Context(), c.Param("id"), progress)
	if err != nil {
		h.resp.Fail(c, err)
		return
	}
	response.OK(c, a)
}

// UpdateProgressByPair PUT /api/assignments/book/:bookId/user/:userId/progress
func (h *AssignmentHandler) UpdateProgressByPair(c *gin.Context) {
	progress, ok := h.bindProgress(c)
	if !ok {
		return
	}

	a, err := h.assignmentSvc.UpdateProgressByPair(c.Request.Context(), c.Param("bookId"), c.Param("userId"), progress)
	if err != nil {
		h.resp.Fail(c, err)
		return
	}
	response.OK(c, a)
}

// Delete DELETE /api/assignments/:id
func (h *AssignmentHandler) Delete(c *gin.Context) {
	if err := h.assignmentSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.resp.Fail(c, err)
		return
	}
	response.Message(c, "Atribuição removida com sucesso")
}

// DeleteByPair DELETE /api/assignments/book/:bookId/user/:userId
func (h *AssignmentHandler) DeleteByPair(c *gin.Context) {
	if err := h.assignmentSvc.DeleteByPair(c.Request.Context(), c.Param("bookId"), c.Param("userId")); err != nil {
		h.resp.Fail(c, err)
		return
	}
	response.Message(c, "Atribuição removida com sucesso")
}

// bindProgress reports any malformed progress value as out of range.
func (h *AssignmentHandler) bindProgress(c *gin.Context) (*int, bool) {
	var req dto.UpdateProgressRequest
	if err := bindJSON(c, &req); err != nil {
		if errors.Is(err, errBodyTooLarge) {
			h.resp.Fail(c, err)
		} else {
			response.Error(c, http.StatusBadRequest, service.ErrInvalidProgress.Message)
		}
		return nil, false
	}
	return req.Progress, true
}
