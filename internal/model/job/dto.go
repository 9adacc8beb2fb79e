package job

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"github.com/deppfellow/jobly/internal/model"
	"github.com/deppfellow/jobly/internal/sqlclause"
	"github.com/deppfellow/jobly/internal/validation"
)

var maxEquity = decimal.NewFromInt(1)

func validateEquity(equity *decimal.Decimal) error {
	if equity == nil {
		return nil
	}
	if equity.IsNegative() || equity.GreaterThan(maxEquity) {
		return validation.CustomValidationErrors{
			{Field: "equity", Message: "must be between 0 and 1"},
		}
	}
	return nil
}

// ------------------------------------------------------------

type CreateJobPayload struct {
	Title         string           `json:"title" validate:"required,min=1" jsonschema:"required"`
	Salary        *int             `json:"salary" validate:"omitempty,min=0"`
	Equity        *decimal.Decimal `json:"equity" jsonschema:"type=number,minimum=0,maximum=1"`
	CompanyHandle string           `json:"companyHandle" validate:"required,max=25" jsonschema:"required"`
}

func (p *CreateJobPayload) Validate() error {
	if err := validation.Struct(p); err != nil {
		return err
	}
	return validateEquity(p.Equity)
}

// ------------------------------------------------------------

// SearchJobsQuery carries the raw query string, see Filters.
type SearchJobsQuery struct {
	Title     string `query:"title" validate:"omitempty,max=255"`
	MinSalary string `query:"minSalary" validate:"omitempty,number"`
	HasEquity string `query:"hasEquity" validate:"omitempty,boolean"`
}

func (q *SearchJobsQuery) Validate() error {
	return validation.Struct(q)
}

// Filters converts the query into search filters. hasEquity only becomes a
// filter when it is true; false means "any equity" and is dropped.
func (q *SearchJobsQuery) Filters() (sqlclause.Filters, error) {
	filters := sqlclause.Filters{}

	if q.Title != "" {
		filters["title"] = q.Title
	}

	if q.MinSalary != "" {
		v, err := model.ParseQueryInt("minSalary", q.MinSalary)
		if err != nil {
			return nil, err
		}
		filters["minSalary"] = v
	}

	if q.HasEquity != "" {
		v, err := cast.ToBoolE(q.HasEquity)
		if err != nil {
			return nil, err
		}
		if v {
			filters["hasEquity"] = true
		}
	}

	return filters, nil
}

// ------------------------------------------------------------

type GetJobPayload struct {
	ID int `param:"id" validate:"required,min=1"`
}

func (p *GetJobPayload) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

// UpdateJobPayload is a partial update. The id and company of a job are fixed.
type UpdateJobPayload struct {
	ID     int              `param:"id" json:"-" validate:"required,min=1"`
	Title  *string          `json:"title" validate:"omitempty,min=1"`
	Salary *int             `json:"salary" validate:"omitempty,min=0"`
	Equity *decimal.Decimal `json:"equity" jsonschema:"type=number,minimum=0,maximum=1"`
}

func (p *UpdateJobPayload) Validate() error {
	if err := validation.Struct(p); err != nil {
		return err
	}
	return validateEquity(p.Equity)
}

// UpdateData lists the provided fields in declaration order.
func (p *UpdateJobPayload) UpdateData() sqlclause.UpdateData {
	var data sqlclause.UpdateData
	if p.Title != nil {
		data = data.Set("title", *p.Title)
	}
	if p.Salary != nil {
		data = data.Set("salary", *p.Salary)
	}
	if p.Equity != nil {
		data = data.Set("equity", *p.Equity)
	}
	return data
}

// ------------------------------------------------------------

type DeleteJobPayload struct {
	ID int `param:"id" validate:"required,min=1"`
}

func (p *DeleteJobPayload) Validate() error {
	return validation.Struct(p)
}
