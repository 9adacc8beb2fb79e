package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/jobly/internal/config"
	"github.com/deppfellow/jobly/internal/model/company"
	"github.com/deppfellow/jobly/internal/server"
	"github.com/deppfellow/jobly/internal/validation"
)

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{Primary: config.Primary{Env: "test"}},
		Logger: &logger,
	}
}

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.JSONSerializer = validation.StrictJSONSerializer{}

	req := httptest.NewRequest(method, target, nil)
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCheckHealth(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name   string
		checks []HealthCheck
		status int
		state  string
	}{
		{"no checks", nil, http.StatusOK, "healthy"},
		{"all pass", []HealthCheck{{Name: "database", Critical: true, Ping: ok}}, http.StatusOK, "healthy"},
		{"non critical failure", []HealthCheck{
			{Name: "database", Critical: true, Ping: ok},
			{Name: "redis", Ping: down},
		}, http.StatusOK, "healthy"},
		{"critical failure", []HealthCheck{{Name: "database", Critical: true, Ping: down}}, http.StatusServiceUnavailable, "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(newTestServer(), tt.checks...)
			c, rec := newContext(http.MethodGet, "/status", "")

			require.NoError(t, h.CheckHealth(c))
			assert.Equal(t, tt.status, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.state, body["status"])
			assert.Equal(t, "test", body["environment"])
			assert.Len(t, body["checks"], len(tt.checks))
		})
	}
}

func TestServeSchema(t *testing.T) {
	h := NewOpenAPIHandler(newTestServer())

	t.Run("create payload marks required fields", func(t *testing.T) {
		c, rec := newContext(http.MethodGet, "/docs/schemas/companyNew", "")
		c.SetParamNames("name")
		c.SetParamValues("companyNew")

		require.NoError(t, h.ServeSchema(c))
		require.Equal(t, http.StatusOK, rec.Code)

		var schema struct {
			Properties map[string]any `json:"properties"`
			Required   []string       `json:"required"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &schema))
		assert.Contains(t, schema.Properties, "numEmployees")
		assert.ElementsMatch(t, []string{"handle", "name", "description"}, schema.Required)
	})

	t.Run("update payload hides path parameter", func(t *testing.T) {
		c, rec := newContext(http.MethodGet, "/docs/schemas/companyUpdate", "")
		c.SetParamNames("name")
		c.SetParamValues("companyUpdate")

		require.NoError(t, h.ServeSchema(c))
		assert.NotContains(t, rec.Body.String(), `"handle"`)
		assert.Contains(t, rec.Body.String(), `"logoUrl"`)
	})

	t.Run("query schema uses query names", func(t *testing.T) {
		c, rec := newContext(http.MethodGet, "/docs/schemas/jobSearch", "")
		c.SetParamNames("name")
		c.SetParamValues("jobSearch")

		require.NoError(t, h.ServeSchema(c))
		assert.Contains(t, rec.Body.String(), `"hasEquity"`)
	})

	t.Run("unknown schema", func(t *testing.T) {
		c, _ := newContext(http.MethodGet, "/docs/schemas/nope", "")
		c.SetParamNames("name")
		c.SetParamValues("nope")

		assert.Error(t, h.ServeSchema(c))
	})
}

func TestHandle_FreshPayloadPerRequest(t *testing.T) {
	var seen []*company.UpdateCompanyPayload
	h := Handle(func(c echo.Context, p *company.UpdateCompanyPayload) (*company.UpdateCompanyPayload, error) {
		seen = append(seen, p)
		return p, nil
	}, http.StatusOK)

	c, _ := newContext(http.MethodPatch, "/v1/companies/acme", `{"name":"Acme"}`)
	c.SetParamNames("handle")
	c.SetParamValues("acme")
	require.NoError(t, h(c))

	c, _ = newContext(http.MethodPatch, "/v1/companies/acme", `{"description":"Anvils"}`)
	c.SetParamNames("handle")
	c.SetParamValues("acme")
	require.NoError(t, h(c))

	require.Len(t, seen, 2)
	assert.NotSame(t, seen[0], seen[1])
	assert.Nil(t, seen[1].Name)
	require.NotNil(t, seen[1].Description)
	assert.Equal(t, "acme", seen[1].Handle)
}
