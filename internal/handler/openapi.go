package handler

import (
	"fmt"
	"maps"
	"net/http"
	"os"
	"path/filepath"
	"slices"

	"github.com/invopop/jsonschema"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/jobly/internal/errs"
	"github.com/deppfellow/jobly/internal/model/company"
	"github.com/deppfellow/jobly/internal/model/job"
	"github.com/deppfellow/jobly/internal/model/user"
	"github.com/deppfellow/jobly/internal/server"
)

const staticDir = "static"

// schemaSource is a request type published under /docs/schemas.
// Query types are named by their query tags.
type schemaSource struct {
	value any
	tag   string
}

var requestSchemas = map[string]schemaSource{
	"companyNew":    {value: &company.CreateCompanyPayload{}},
	"companyUpdate": {value: &company.UpdateCompanyPayload{}},
	"companySearch": {value: &company.SearchCompaniesQuery{}, tag: "query"},
	"jobNew":        {value: &job.CreateJobPayload{}},
	"jobUpdate":     {value: &job.UpdateJobPayload{}},
	"jobSearch":     {value: &job.SearchJobsQuery{}, tag: "query"},
	"userAuth":      {value: &user.TokenPayload{}},
	"userRegister":  {value: &user.RegisterPayload{}},
	"userNew":       {value: &user.CreateUserPayload{}},
	"userUpdate":    {value: &user.UpdateUserPayload{}},
}

// OpenAPIHandler serves the API documentation UI and the JSON schemas of
// every request body.
type OpenAPIHandler struct {
	Handler
	schemas map[string]*jsonschema.Schema
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	schemas := make(map[string]*jsonschema.Schema, len(requestSchemas))
	for name, source := range requestSchemas {
		schemas[name] = reflectSchema(source)
	}

	return &OpenAPIHandler{
		Handler: NewHandler(s),
		schemas: schemas,
	}
}

func reflectSchema(source schemaSource) *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
		FieldNameTag:               source.tag,
	}
	return reflector.Reflect(source.value)
}

// ServeOpenAPIUI serves static/openapi.html uncached.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	templateBytes, err := os.ReadFile(filepath.Join(staticDir, "openapi.html"))

	c.Response().Header().Set("Cache-Control", "no-cache")

	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	if err := c.HTML(http.StatusOK, string(templateBytes)); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}

// ListSchemas returns the names accepted by ServeSchema.
func (h *OpenAPIHandler) ListSchemas(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{
		"schemas": slices.Sorted(maps.Keys(h.schemas)),
	})
}

// ServeSchema returns the JSON schema of one request type, e.g. companyNew.
func (h *OpenAPIHandler) ServeSchema(c echo.Context) error {
	name := c.Param("name")

	schema, ok := h.schemas[name]
	if !ok {
		return errs.NewNotFoundError(fmt.Sprintf("Unknown schema: %s", name), true, nil)
	}

	return c.JSON(http.StatusOK, schema)
}
