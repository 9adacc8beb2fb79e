package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/jobly/internal/handler"
)

// registerSystemRoutes registers health, docs and static assets.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	// openapi.json and openapi.html
	r.Static("/static", "static")

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
	r.GET("/docs/schemas", h.OpenAPI.ListSchemas)
	r.GET("/docs/schemas/:name", h.OpenAPI.ServeSchema)
}
