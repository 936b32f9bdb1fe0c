package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/maximiza-sistemas/edu-backend/internal/dto"
	"github.com/maximiza-sistemas/edu-backend/internal/service"
	"github.com/maximiza-sistemas/edu-backend/pkg/response"
)

// AuthHandler authentication endpoints.
type AuthHandler struct {
	authSvc service.AuthService
	resp    *Responder
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authSvc service.AuthService, resp *Responder) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, resp: resp}
}

// Login exchanges credentials for a token.
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		h.resp.Fail(c, err)
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		h.resp.Fail(c, err)
		return
	}

	response.OK(c, result)
}

// Logout is stateless; the client discards its token.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	response.Message(c, "Logout realizado com sucesso")
}

// Me returns the caller's profile.
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.Me(c.Request.Context(), userID)
	if err != nil {
		h.resp.Fail(c, err)
		return
	}

	response.OK(c, user)
}
