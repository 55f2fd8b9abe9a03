package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/usss-rp/portal/internal/auth"
	"github.com/usss-rp/portal/pkg/logger"
)

// AuthService interface for session operations.
type AuthService interface {
	Login(ctx context.Context, input auth.LoginInput) (*auth.Session, error)
	Register(ctx context.Context, input auth.RegisterInput) (*auth.Session, error)
	Logout(ctx context.Context, token string) error
}

// AuthHandler handles login, registration, and logout requests.
type AuthHandler struct {
	service AuthService
	log     *logger.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log,
	}
}

// Login authenticates a member and returns a session token.
// POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var input auth.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		errorResponse(c, http.StatusBadRequest, "staticId and password are required")
		return
	}

	session, err := h.service.Login(c.Request.Context(), input)
	if err != nil {
		serviceError(c, err, "Failed to log in")
		return
	}

	c.JSON(http.StatusOK, session)
}

// Register creates a new member account and logs it in.
// POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var input auth.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		errorResponse(c, http.StatusBadRequest, "staticId, nickname, and password are required")
		return
	}

	session, err := h.service.Register(c.Request.Context(), input)
	if err != nil {
		serviceError(c, err, "Failed to register")
		return
	}

	c.JSON(http.StatusCreated, session)
}

// Logout revokes the presented session token.
// POST /auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := auth.CurrentToken(c)
	if token == "" {
		errorResponse(c, http.StatusUnauthorized, "missing bearer token")
		return
	}

	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		h.log.Error().Err(err).Msg("Failed to revoke session")
		errorResponse(c, http.StatusInternalServerError, "Failed to log out")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}
