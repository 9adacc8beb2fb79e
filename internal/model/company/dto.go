package company

import (
	"github.com/deppfellow/jobly/internal/model"
	"github.com/deppfellow/jobly/internal/sqlclause"
	"github.com/deppfellow/jobly/internal/validation"
)

// ------------------------------------------------------------

type CreateCompanyPayload struct {
	Handle       string  `json:"handle" validate:"required,min=1,max=25" jsonschema:"required"`
	Name         string  `json:"name" validate:"required,min=1" jsonschema:"required"`
	Description  string  `json:"description" validate:"required" jsonschema:"required"`
	NumEmployees *int    `json:"numEmployees" validate:"omitempty,min=0"`
	LogoURL      *string `json:"logoUrl" validate:"omitempty,url"`
}

func (p *CreateCompanyPayload) Validate() error {
	if err := validation.Struct(p); err != nil {
		return err
	}

	if !validation.IsValidHandle(p.Handle) {
		return validation.CustomValidationErrors{
			{Field: "handle", Message: "must contain only lowercase letters, digits and dashes"},
		}
	}

	return nil
}

// ------------------------------------------------------------

// SearchCompaniesQuery carries the raw query string. Values are validated as
// text and only turned into typed filters by Filters.
type SearchCompaniesQuery struct {
	MinEmployees string `query:"minEmployees" validate:"omitempty,number"`
	MaxEmployees string `query:"maxEmployees" validate:"omitempty,number"`
	Name         string `query:"name" validate:"omitempty,max=255"`
}

func (q *SearchCompaniesQuery) Validate() error {
	return validation.Struct(q)
}

// Filters converts the query into search filters. Only parameters present in
// the request appear in the result; the query itself is left untouched.
func (q *SearchCompaniesQuery) Filters() (sqlclause.Filters, error) {
	filters := sqlclause.Filters{}

	if q.MinEmployees != "" {
		v, err := model.ParseQueryInt("minEmployees", q.MinEmployees)
		if err != nil {
			return nil, err
		}
		filters["minEmployees"] = v
	}

	if q.MaxEmployees != "" {
		v, err := model.ParseQueryInt("maxEmployees", q.MaxEmployees)
		if err != nil {
			return nil, err
		}
		filters["maxEmployees"] = v
	}

	if q.Name != "" {
		filters["name"] = q.Name
	}

	return filters, nil
}

// ------------------------------------------------------------

type GetCompanyPayload struct {
	Handle string `param:"handle" validate:"required,max=25"`
}

func (p *GetCompanyPayload) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

// UpdateCompanyPayload is a partial update: nil fields are left unchanged.
// The handle itself cannot be changed.
type UpdateCompanyPayload struct {
	Handle       string  `param:"handle" json:"-" validate:"required,max=25"`
	Name         *string `json:"name" validate:"omitempty,min=1"`
	Description  *string `json:"description"`
	NumEmployees *int    `json:"numEmployees" validate:"omitempty,min=0"`
	LogoURL      *string `json:"logoUrl" validate:"omitempty,url"`
}

func (p *UpdateCompanyPayload) Validate() error {
	return validation.Struct(p)
}

// UpdateData lists the provided fields in declaration order.
func (p *UpdateCompanyPayload) UpdateData() sqlclause.UpdateData {
	var data sqlclause.UpdateData
	if p.Name != nil {
		data = data.Set("name", *p.Name)
	}
	if p.Description != nil {
		data = data.Set("description", *p.Description)
	}
	if p.NumEmployees != nil {
		data = data.Set("numEmployees", *p.NumEmployees)
	}
	if p.LogoURL != nil {
		data = data.Set("logoUrl", *p.LogoURL)
	}
	return data
}

// ------------------------------------------------------------

type DeleteCompanyPayload struct {
	Handle string `param:"handle" validate:"required,max=25"`
}

func (p *DeleteCompanyPayload) Validate() error {
	return validation.Struct(p)
}
