package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/jobly/internal/model"
	"github.com/deppfellow/jobly/internal/model/company"
	"github.com/deppfellow/jobly/internal/server"
	"github.com/deppfellow/jobly/internal/service"
)

type CompanyHandler struct {
	Handler
	companyService *service.CompanyService
}

func NewCompanyHandler(s *server.Server, companyService *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		Handler:        NewHandler(s),
		companyService: companyService,
	}
}

func (h *CompanyHandler) CreateCompany(c echo.Context, payload *company.CreateCompanyPayload) (*company.Response, error) {
	return h.companyService.Create(c.Request().Context(), payload)
}

func (h *CompanyHandler) SearchCompanies(c echo.Context, query *company.SearchCompaniesQuery) (*company.ListResponse, error) {
	return h.companyService.Search(c.Request().Context(), query)
}

func (h *CompanyHandler) GetCompany(c echo.Context, payload *company.GetCompanyPayload) (*company.DetailResponse, error) {
	return h.companyService.Get(c.Request().Context(), payload)
}

func (h *CompanyHandler) UpdateCompany(c echo.Context, payload *company.UpdateCompanyPayload) (*company.Response, error) {
	return h.companyService.Update(c.Request().Context(), payload)
}

func (h *CompanyHandler) DeleteCompany(c echo.Context, payload *company.DeleteCompanyPayload) (*model.DeletedResponse, error) {
	return h.companyService.Delete(c.Request().Context(), payload)
}
