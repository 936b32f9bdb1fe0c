package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/maximiza-sistemas/edu-backend/internal/dto"
	"github.com/maximiza-sistemas/edu-backend/internal/service"
	"github.com/maximiza-sistemas/edu-backend/pkg/response"
)

// UserHandler user endpoints.
type UserHandler struct {
	userSvc service.UserService
	resp    *Responder
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(userSvc service.UserService, resp *Responder) *UserHandler {
	return &UserHandler{userSvc: userSvc, resp: resp}
}

// List GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	var req dto.UserListRequest
	if err := bindQuery(c, &req); err != nil {
		h.resp.Fail(c, err)
		return
	}

	users, total, err := h.userSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.resp.Fail(c, err)
		return
	}

	response.OKPage(c, users, total, req.GetLimit(), req.GetOffset())
}

// Get GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.resp.Fail(c, err)
		return
	}
	response.OK(c, user)
}

// Create POST /api/users
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := bindJSON(c, &req); err != nil {
		h.resp.Fail(c, err)
		return
	}

	user, err := h.userSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.resp.Fail(c, err)
		return
	}

	response.Created(c, user)
}

// Update PUT /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := bindJSON(c, &req); err != nil {
		h.resp.Fail(c, err)
		return
	}

	user, err := h.userSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.resp.Fail(c, err)
		return
	}

	response.OK(c, user)
}

// Delete DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.resp.Fail(c, err)
		return
	}
	response.Message(c, "Usuário deletado com sucesso")
}

// ListByRole GET /api/users/role/:role
func (h *UserHandler) ListByRole(c *gin.Context) {
	users, err := h.userSvc.ListByRole(c.Request.Context(), c.Param("role"))
	if err != nil {
		h.resp.Fail(c, err)
		return
	}
	response.OK(c, users)
}

// ListStudentsByProfessor GET /api/users/professor/:professorId/students
func (h *UserHandler) ListStudentsByProfessor(c *gin.Context) {
	users, err := h.userSvc.ListStudentsByProfessor(c.Request.Context(), c.Param("professorId"))
	if err != nil {
		h.resp.Fail(c, err)
		return
	}
	response.OK(c, users)
}
