// Package handler is the HTTP layer between the router and the services.
//
// Handlers bind and validate requests through the validation package, call
// the matching service and return its result; base.go wraps every typed
// handler with logging and tracing.
package handler

import (
	"github.com/deppfellow/jobly/internal/server"
	"github.com/deppfellow/jobly/internal/service"
)

// Handlers groups every HTTP handler for router setup.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Auth    *AuthHandler
	Company *CompanyHandler
	Job     *JobHandler
	User    *UserHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Auth:    NewAuthHandler(s, services.Auth, services.User),
		Company: NewCompanyHandler(s, services.Company),
		Job:     NewJobHandler(s, services.Job),
		User:    NewUserHandler(s, services.User),
	}
}
