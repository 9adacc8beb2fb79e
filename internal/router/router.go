// Package router builds the Echo instance: the global middleware chain,
// the error handler and every route.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/jobly/internal/handler"
	"github.com/deppfellow/jobly/internal/middleware"
	"github.com/deppfellow/jobly/internal/server"
	"github.com/deppfellow/jobly/internal/service"
	"github.com/deppfellow/jobly/internal/validation"
)

func NewRouter(s *server.Server, h *handler.Handlers, services *service.Services) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s, services.Auth)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler
	router.JSONSerializer = validation.StrictJSONSerializer{}

	// Authenticate runs before tracing and the context enhancer so both can
	// see the caller.
	router.Use(
		middlewares.RateLimit.Limit(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Auth.Authenticate(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)

	v1 := router.Group("/v1")
	registerAuthRoutes(v1, h)
	registerCompanyRoutes(v1, h, middlewares.Auth)
	registerJobRoutes(v1, h, middlewares.Auth)
	registerUserRoutes(v1, h, middlewares.Auth)

	return router
}
