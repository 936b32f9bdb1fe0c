package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/maximiza-sistemas/edu-backend/internal/model"
	"github.com/maximiza-sistemas/edu-backend/pkg/jwt"
	"github.com/maximiza-sistemas/edu-backend/pkg/response"
)

// Context keys set by the auth middleware.
const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
	CtxRole   = "role"
)

const (
	MsgTokenMissing     = "Token de autenticação não fornecido"
	MsgTokenInvalid     = "Token inválido ou expirado"
	MsgNotAuthenticated = "Não autenticado"
	MsgForbidden        = "Acesso negado. Permissão insuficiente."
)

// JWTAuth requires Authorization: Bearer <token> and injects the caller identity.
func JWTAuth(jwtMgr *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, MsgTokenMissing)
			return
		}

		if !authenticate(c, jwtMgr, token) {
			response.Abort(c, http.StatusUnauthorized, MsgTokenInvalid)
			return
		}

		c.Next()
	}
}

// OptionalAuth injects the caller identity when a valid token is present and never rejects.
func OptionalAuth(jwtMgr *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			authenticate(c, jwtMgr, token)
		}
		c.Next()
	}
}

// RoleAuth allows only the listed roles. There is no hierarchy.
func RoleAuth(allowed ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(CtxRole)
		if !exists {
			response.Abort(c, http.StatusUnauthorized, MsgNotAuthenticated)
			return
		}

		role, _ := v.(model.Role)
		for _, r := range allowed {
			if role == r {
				c.Next()
				return
			}
		}

		response.Abort(c, http.StatusForbidden, MsgForbidden)
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func authenticate(c *gin.Context, jwtMgr *jwt.Manager, token string) bool {
	claims, err := jwtMgr.ParseToken(token)
	if err != nil {
		return false
	}
	role, err := model.ParseRole(claims.Role)
	if err != nil {
		return false
	}

	c.Set(CtxUserID, claims.UserID)
	c.Set(CtxEmail, claims.Email)
	c.Set(CtxRole, role)
	return true
}
