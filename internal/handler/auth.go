package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/jobly/internal/model/user"
	"github.com/deppfellow/jobly/internal/server"
	"github.com/deppfellow/jobly/internal/service"
)

// AuthHandler issues API tokens.
type AuthHandler struct {
	Handler
	authService *service.AuthService
	userService *service.UserService
}

func NewAuthHandler(s *server.Server, authService *service.AuthService, userService *service.UserService) *AuthHandler {
	return &AuthHandler{
		Handler:     NewHandler(s),
		authService: authService,
		userService: userService,
	}
}

// Token exchanges a username and password for a token.
func (h *AuthHandler) Token(c echo.Context, payload *user.TokenPayload) (*user.TokenResponse, error) {
	return h.authService.Login(c.Request().Context(), payload)
}

// Register creates a non-admin user and returns a token for them.
func (h *AuthHandler) Register(c echo.Context, payload *user.RegisterPayload) (*user.TokenResponse, error) {
	return h.userService.Register(c.Request().Context(), payload)
}
