package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/jobly/internal/config"
	"github.com/deppfellow/jobly/internal/errs"
	"github.com/deppfellow/jobly/internal/handler"
	"github.com/deppfellow/jobly/internal/model/user"
	"github.com/deppfellow/jobly/internal/repository"
	"github.com/deppfellow/jobly/internal/server"
	"github.com/deppfellow/jobly/internal/service"
)

type testApp struct {
	echo     *echo.Echo
	mock     sqlmock.Sqlmock
	services *service.Services
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	logger := zerolog.Nop()
	s := &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Auth:    config.AuthConfig{SecretKey: "test-secret", TokenTTL: time.Hour, BcryptCost: 4},
		},
		Logger: &logger,
	}

	services := service.NewServices(s, repository.NewRepositories(db))
	handlers := handler.NewHandlers(s, services)

	return &testApp{
		echo:     NewRouter(s, handlers, services),
		mock:     mock,
		services: services,
	}
}

func (a *testApp) token(t *testing.T, username string, isAdmin bool) string {
	t.Helper()
	token, err := a.services.Auth.CreateToken(&user.User{Username: username, IsAdmin: isAdmin})
	require.NoError(t, err)
	return token
}

func (a *testApp) do(method, target, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errs.HTTPError {
	t.Helper()
	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSearchCompanies(t *testing.T) {
	app := newTestApp(t)

	app.mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT handle, name, description, num_employees, logo_url FROM companies WHERE num_employees >= $1 AND name ILIKE $2 ORDER BY name`)).
		WithArgs(10, "%net%").
		WillReturnRows(sqlmock.NewRows([]string{"handle", "name", "description", "num_employees", "logo_url"}).
			AddRow("netco", "NetCo", "Nets", 50, nil))

	rec := app.do(http.MethodGet, "/v1/companies?minEmployees=10&name=net", "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t,
		`{"companies":[{"handle":"netco","name":"NetCo","description":"Nets","numEmployees":50,"logoUrl":null}]}`,
		rec.Body.String())
}

func TestSearchCompanies_InvalidRange(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/v1/companies?minEmployees=10&maxEmployees=5", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_RANGE", decodeError(t, rec).Code)
}

func TestSearchCompanies_NotANumber(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/v1/companies?minEmployees=lots", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchJobs_HasEquity(t *testing.T) {
	app := newTestApp(t)

	app.mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, title, salary, equity, company_handle FROM jobs WHERE equity > $1 ORDER BY title, id`)).
		WithArgs(0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "salary", "equity", "company_handle"}).
			AddRow(1, "Engineer", 100000, "0.05", "netco"))

	rec := app.do(http.MethodGet, "/v1/jobs?hasEquity=true", "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"title":"Engineer"`)
	assert.Contains(t, rec.Body.String(), `"companyHandle":"netco"`)
}

func TestCompanyWrites_RequireLogin(t *testing.T) {
	app := newTestApp(t)

	body := `{"handle":"acme","name":"Acme","description":"Anvils"}`
	rec := app.do(http.MethodPost, "/v1/companies", body, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(http.MethodDelete, "/v1/companies/acme", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateCompany(t *testing.T) {
	app := newTestApp(t)
	token := app.token(t, "u1", false)

	t.Run("empty payload", func(t *testing.T) {
		rec := app.do(http.MethodPatch, "/v1/companies/acme", `{}`, token)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "NO_DATA", decodeError(t, rec).Code)
	})

	t.Run("unknown field", func(t *testing.T) {
		rec := app.do(http.MethodPatch, "/v1/companies/acme", `{"handle":"new"}`, token)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("partial update", func(t *testing.T) {
		app.mock.ExpectQuery(regexp.QuoteMeta(
			`UPDATE companies SET "name"=$1, "num_employees"=$2 WHERE handle = $3`)).
			WithArgs("Acme Corp", 20, "acme").
			WillReturnRows(sqlmock.NewRows([]string{"handle", "name", "description", "num_employees", "logo_url"}).
				AddRow("acme", "Acme Corp", "Anvils", 20, nil))

		rec := app.do(http.MethodPatch, "/v1/companies/acme", `{"name":"Acme Corp","numEmployees":20}`, token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Contains(t, rec.Body.String(), `"name":"Acme Corp"`)
	})
}

func TestJobWrites_RequireAdmin(t *testing.T) {
	app := newTestApp(t)

	body := `{"title":"Engineer","companyHandle":"acme"}`
	rec := app.do(http.MethodPost, "/v1/jobs", body, app.token(t, "u1", false))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.do(http.MethodPost, "/v1/jobs", body, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserRoutes_AdminOrSelf(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/v1/users", "", app.token(t, "u1", false))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.do(http.MethodDelete, "/v1/users/u2", "", app.token(t, "u1", false))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	app.mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM users WHERE username = $1`)).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"username"}).AddRow("u1"))

	rec = app.do(http.MethodDelete, "/v1/users/u1", "", app.token(t, "u1", false))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"deleted":"u1"}`, rec.Body.String())
}

func TestSystemRoutes(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/status", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)

	rec = app.do(http.MethodGet, "/docs/schemas/companyNew", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"handle"`)

	rec = app.do(http.MethodGet, "/docs/schemas/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(http.MethodGet, "/v1/nothing-here", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decodeError(t, rec).Message)
}
