package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cristianccgg/letranido-backend/internal/api/middleware"
	"github.com/cristianccgg/letranido-backend/internal/dto"
	"github.com/cristianccgg/letranido-backend/internal/service"
	"github.com/cristianccgg/letranido-backend/pkg/response"
)

// AuthHandler serves the admin authentication endpoints.
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler creates the AuthHandler.
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login authenticates an admin.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Datos de acceso inválidos")
		return
	}

	token, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Unauthorized(c, 11001, "Email o contraseña incorrectos")
		case errors.Is(err, service.ErrNotAdmin):
			response.Forbidden(c, 11002, "La cuenta no tiene permisos de administración")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, token)
}

// Logout revokes the current access token.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti := c.GetString(middleware.CtxTokenJTI)
	expiresAt, _ := c.Get(middleware.CtxTokenExpir)

	exp, ok := expiresAt.(time.Time)
	if !ok {
		exp = time.Now()
	}

	if err := h.authSvc.Logout(c.Request.Context(), jti, exp); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// GetCurrentUser returns the authenticated admin's profile.
// GET /api/v1/auth/me
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)

	user, err := h.authSvc.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			response.NotFound(c, 11003, "Cuenta no encontrada")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, user)
}
