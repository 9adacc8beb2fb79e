package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/jobly/internal/model"
	"github.com/deppfellow/jobly/internal/model/user"
	"github.com/deppfellow/jobly/internal/server"
	"github.com/deppfellow/jobly/internal/service"
)

// UserHandler serves user administration and job applications. Access
// control (admin, or admin-or-self) is enforced by the router.
type UserHandler struct {
	Handler
	userService *service.UserService
}

func NewUserHandler(s *server.Server, userService *service.UserService) *UserHandler {
	return &UserHandler{
		Handler:     NewHandler(s),
		userService: userService,
	}
}

// CreateUser lets an admin add a user, possibly another admin.
func (h *UserHandler) CreateUser(c echo.Context, payload *user.CreateUserPayload) (*user.CreatedResponse, error) {
	return h.userService.Create(c.Request().Context(), payload)
}

func (h *UserHandler) ListUsers(c echo.Context, payload *user.ListUsersPayload) (*user.ListResponse, error) {
	return h.userService.List(c.Request().Context(), payload)
}

func (h *UserHandler) GetUser(c echo.Context, payload *user.GetUserPayload) (*user.DetailResponse, error) {
	return h.userService.Get(c.Request().Context(), payload)
}

func (h *UserHandler) UpdateUser(c echo.Context, payload *user.UpdateUserPayload) (*user.Response, error) {
	return h.userService.Update(c.Request().Context(), payload)
}

func (h *UserHandler) DeleteUser(c echo.Context, payload *user.DeleteUserPayload) (*model.DeletedResponse, error) {
	return h.userService.Delete(c.Request().Context(), payload)
}

func (h *UserHandler) ApplyToJob(c echo.Context, payload *user.ApplyPayload) (*user.AppliedResponse, error) {
	return h.userService.Apply(c.Request().Context(), payload)
}
