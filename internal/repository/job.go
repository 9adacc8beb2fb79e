package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/jobly/internal/model/job"
	"github.com/deppfellow/jobly/internal/sqlclause"
)

var jobFilters = []sqlclause.FilterRule{
	{Field: "title", ColumnExpr: "title", Operator: "ILIKE", Transform: sqlclause.Substring},
	{Field: "minSalary", ColumnExpr: "salary", Operator: ">="},
	{Field: "hasEquity", ColumnExpr: "equity", Operator: ">", Transform: sqlclause.Const(0)},
}

const jobReturning = `id, title, salary, equity, company_handle`

type JobRepository struct {
	db DBTX
}

func NewJobRepository(db DBTX) *JobRepository {
	return &JobRepository{db: db}
}

func scanJob(row rowScanner) (*job.Job, error) {
	var j job.Job
	if err := row.Scan(&j.ID, &j.Title, &j.Salary, &j.Equity, &j.CompanyHandle); err != nil {
		return nil, err
	}
	return &j, nil
}

// Create inserts a job. An unknown company surfaces as a foreign key violation.
func (r *JobRepository) Create(ctx context.Context, payload *job.CreateJobPayload) (*job.Job, error) {
	stmt := `
		INSERT INTO jobs (title, salary, equity, company_handle)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + jobReturning

	j, err := scanJob(r.db.QueryRowContext(ctx, stmt,
		payload.Title,
		payload.Salary,
		payload.Equity,
		payload.CompanyHandle,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert job for company=%s: %w", payload.CompanyHandle, err)
	}

	return j, nil
}

// FindAll returns the jobs matching filters, ordered by title.
func (r *JobRepository) FindAll(ctx context.Context, filters sqlclause.Filters) ([]job.Job, error) {
	where, err := sqlclause.BuildFilterClause(filters, jobFilters)
	if err != nil {
		return nil, err
	}

	stmt := `SELECT ` + jobReturning + ` FROM jobs` + whereClause(where.Fragment) + ` ORDER BY title, id`

	rows, err := r.db.QueryContext(ctx, stmt, where.Values...)
	if err != nil {
		return nil, fmt.Errorf("failed to search jobs: %w", err)
	}
	defer rows.Close()

	jobs := []job.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *j)
	}

	return jobs, rows.Err()
}

func (r *JobRepository) Get(ctx context.Context, id int) (*job.Job, error) {
	j, err := scanJob(r.db.QueryRowContext(ctx, `SELECT `+jobReturning+` FROM jobs WHERE id = $1`, id))
	if err != nil {
		return nil, notFound("jobs", err)
	}
	return j, nil
}

func (r *JobRepository) Update(ctx context.Context, id int, data sqlclause.UpdateData) (*job.Job, error) {
	set, err := sqlclause.BuildUpdateClause(data, nil)
	if err != nil {
		return nil, err
	}

	stmt := `UPDATE jobs SET ` + set.Fragment +
		` WHERE id = ` + set.NextPlaceholder() +
		` RETURNING ` + jobReturning

	j, err := scanJob(r.db.QueryRowContext(ctx, stmt, set.Args(id)...))
	if err != nil {
		return nil, notFound("jobs", err)
	}
	return j, nil
}

func (r *JobRepository) Remove(ctx context.Context, id int) error {
	var deleted int
	if err := r.db.QueryRowContext(ctx, `DELETE FROM jobs WHERE id = $1 RETURNING id`, id).Scan(&deleted); err != nil {
		return notFound("jobs", err)
	}
	return nil
}
