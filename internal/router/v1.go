package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/jobly/internal/handler"
	"github.com/deppfellow/jobly/internal/middleware"
)

func registerAuthRoutes(v1 *echo.Group, h *handler.Handlers) {
	auth := v1.Group("/auth")
	auth.POST("/token", handler.Handle(h.Auth.Token, http.StatusOK))
	auth.POST("/register", handler.Handle(h.Auth.Register, http.StatusCreated))
}

// Anyone can read companies; any logged-in user can write them.
func registerCompanyRoutes(v1 *echo.Group, h *handler.Handlers, auth *middleware.AuthMiddleware) {
	companies := v1.Group("/companies")
	companies.GET("", handler.Handle(h.Company.SearchCompanies, http.StatusOK))
	companies.GET("/:handle", handler.Handle(h.Company.GetCompany, http.StatusOK))
	companies.POST("", handler.Handle(h.Company.CreateCompany, http.StatusCreated), auth.RequireLogin)
	companies.PATCH("/:handle", handler.Handle(h.Company.UpdateCompany, http.StatusOK), auth.RequireLogin)
	companies.DELETE("/:handle", handler.Handle(h.Company.DeleteCompany, http.StatusOK), auth.RequireLogin)
}

// Anyone can read jobs; only admins can write them.
func registerJobRoutes(v1 *echo.Group, h *handler.Handlers, auth *middleware.AuthMiddleware) {
	jobs := v1.Group("/jobs")
	jobs.GET("", handler.Handle(h.Job.SearchJobs, http.StatusOK))
	jobs.GET("/:id", handler.Handle(h.Job.GetJob, http.StatusOK))
	jobs.POST("", handler.Handle(h.Job.CreateJob, http.StatusCreated), auth.RequireAdmin)
	jobs.PATCH("/:id", handler.Handle(h.Job.UpdateJob, http.StatusOK), auth.RequireAdmin)
	jobs.DELETE("/:id", handler.Handle(h.Job.DeleteJob, http.StatusOK), auth.RequireAdmin)
}

func registerUserRoutes(v1 *echo.Group, h *handler.Handlers, auth *middleware.AuthMiddleware) {
	self := auth.RequireAdminOrSelf("username")

	users := v1.Group("/users")
	users.POST("", handler.Handle(h.User.CreateUser, http.StatusCreated), auth.RequireAdmin)
	users.GET("", handler.Handle(h.User.ListUsers, http.StatusOK), auth.RequireAdmin)
	users.GET("/:username", handler.Handle(h.User.GetUser, http.StatusOK), self)
	users.PATCH("/:username", handler.Handle(h.User.UpdateUser, http.StatusOK), self)
	users.DELETE("/:username", handler.Handle(h.User.DeleteUser, http.StatusOK), self)
	users.POST("/:username/jobs/:id", handler.Handle(h.User.ApplyToJob, http.StatusOK), self)
}
