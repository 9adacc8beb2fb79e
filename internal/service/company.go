package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/deppfellow/jobly/internal/errs"
	"github.com/deppfellow/jobly/internal/model"
	"github.com/deppfellow/jobly/internal/model/company"
	"github.com/deppfellow/jobly/internal/repository"
)

type CompanyService struct {
	companies *repository.CompanyRepository
}

func NewCompanyService(companies *repository.CompanyRepository) *CompanyService {
	return &CompanyService{companies: companies}
}

func (s *CompanyService) Create(ctx context.Context, payload *company.CreateCompanyPayload) (*company.Response, error) {
	c, err := s.companies.Create(ctx, payload)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("handle", c.Handle).Msg("company created")
	return &company.Response{Company: c}, nil
}

// Search coerces the query string into filters and lists matching companies.
func (s *CompanyService) Search(ctx context.Context, query *company.SearchCompaniesQuery) (*company.ListResponse, error) {
	filters, err := query.Filters()
	if err != nil {
		return nil, errs.ValidationError(err)
	}

	companies, err := s.companies.FindAll(ctx, filters)
	if err != nil {
		return nil, err
	}

	return &company.ListResponse{Companies: companies}, nil
}

func (s *CompanyService) Get(ctx context.Context, payload *company.GetCompanyPayload) (*company.DetailResponse, error) {
	detail, err := s.companies.Get(ctx, payload.Handle)
	if err != nil {
		return nil, err
	}
	return &company.DetailResponse{Company: detail}, nil
}

func (s *CompanyService) Update(ctx context.Context, payload *company.UpdateCompanyPayload) (*company.Response, error) {
	c, err := s.companies.Update(ctx, payload.Handle, payload.UpdateData())
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("handle", c.Handle).Msg("company updated")
	return &company.Response{Company: c}, nil
}

func (s *CompanyService) Delete(ctx context.Context, payload *company.DeleteCompanyPayload) (*model.DeletedResponse, error) {
	if err := s.companies.Remove(ctx, payload.Handle); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("handle", payload.Handle).Msg("company deleted")
	return &model.DeletedResponse{Deleted: payload.Handle}, nil
}
