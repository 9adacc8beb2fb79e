package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/jobly/internal/errs"
	"github.com/deppfellow/jobly/internal/model/company"
	"github.com/deppfellow/jobly/internal/sqlclause"
)

var companyColumns = sqlclause.ColumnMap{
	"numEmployees": "num_employees",
	"logoUrl":      "logo_url",
}

var companyFilters = []sqlclause.FilterRule{
	{Field: "minEmployees", ColumnExpr: "num_employees", Operator: ">="},
	{Field: "maxEmployees", ColumnExpr: "num_employees", Operator: "<="},
	{Field: "name", ColumnExpr: "name", Operator: "ILIKE", Transform: sqlclause.Substring},
}

var companyEmployeeRange = sqlclause.RangeRule{Min: "minEmployees", Max: "maxEmployees"}

const companyReturning = `handle, name, description, num_employees, logo_url`

type CompanyRepository struct {
	db DBTX
}

func NewCompanyRepository(db DBTX) *CompanyRepository {
	return &CompanyRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCompany(row rowScanner) (*company.Company, error) {
	var c company.Company
	if err := row.Scan(&c.Handle, &c.Name, &c.Description, &c.NumEmployees, &c.LogoURL); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CompanyRepository) Create(ctx context.Context, payload *company.CreateCompanyPayload) (*company.Company, error) {
	duplicate, err := exists(ctx, r.db, `SELECT 1 FROM companies WHERE handle = $1`, payload.Handle)
	if err != nil {
		return nil, fmt.Errorf("failed to check company handle=%s: %w", payload.Handle, err)
	}
	if duplicate {
		return nil, errs.NewBadRequestError(
			fmt.Sprintf("Duplicate company: %s", payload.Handle), true, errs.Code("DUPLICATE_COMPANY"), nil, nil)
	}

	stmt := `
		INSERT INTO companies (handle, name, description, num_employees, logo_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + companyReturning

	c, err := scanCompany(r.db.QueryRowContext(ctx, stmt,
		payload.Handle,
		payload.Name,
		payload.Description,
		payload.NumEmployees,
		payload.LogoURL,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert company handle=%s: %w", payload.Handle, err)
	}

	return c, nil
}

// FindAll returns the companies matching filters, ordered by name.
func (r *CompanyRepository) FindAll(ctx context.Context, filters sqlclause.Filters) ([]company.Company, error) {
	where, err := sqlclause.BuildFilterClause(filters, companyFilters, companyEmployeeRange)
	if err != nil {
		return nil, err
	}

	stmt := `SELECT ` + companyReturning + ` FROM companies` + whereClause(where.Fragment) + ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, stmt, where.Values...)
	if err != nil {
		return nil, fmt.Errorf("failed to search companies: %w", err)
	}
	defer rows.Close()

	companies := []company.Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, *c)
	}

	return companies, rows.Err()
}

// Get returns a company and its jobs.
func (r *CompanyRepository) Get(ctx context.Context, handle string) (*company.Detail, error) {
	c, err := scanCompany(r.db.QueryRowContext(ctx,
		`SELECT `+companyReturning+` FROM companies WHERE handle = $1`, handle))
	if err != nil {
		return nil, notFound("companies", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, salary, equity
		FROM jobs
		WHERE company_handle = $1
		ORDER BY id`, handle)
	if err != nil {
		return nil, fmt.Errorf("failed to get jobs for company handle=%s: %w", handle, err)
	}
	defer rows.Close()

	detail := &company.Detail{Company: *c, Jobs: []company.Job{}}
	for rows.Next() {
		var j company.Job
		if err := rows.Scan(&j.ID, &j.Title, &j.Salary, &j.Equity); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		detail.Jobs = append(detail.Jobs, j)
	}

	return detail, rows.Err()
}

// Update applies a partial update. The handle placeholder follows the SET values.
func (r *CompanyRepository) Update(ctx context.Context, handle string, data sqlclause.UpdateData) (*company.Company, error) {
	set, err := sqlclause.BuildUpdateClause(data, companyColumns)
	if err != nil {
		return nil, err
	}

	stmt := `UPDATE companies SET ` + set.Fragment +
		` WHERE handle = ` + set.NextPlaceholder() +
		` RETURNING ` + companyReturning

	c, err := scanCompany(r.db.QueryRowContext(ctx, stmt, set.Args(handle)...))
	if err != nil {
		return nil, notFound("companies", err)
	}

	return c, nil
}

func (r *CompanyRepository) Remove(ctx context.Context, handle string) error {
	var deleted string
	err := r.db.QueryRowContext(ctx, `DELETE FROM companies WHERE handle = $1 RETURNING handle`, handle).Scan(&deleted)
	if err != nil {
		return notFound("companies", err)
	}
	return nil
}
