package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/deppfellow/jobly/internal/errs"
	"github.com/deppfellow/jobly/internal/model"
	"github.com/deppfellow/jobly/internal/model/job"
	"github.com/deppfellow/jobly/internal/repository"
)

// JobService manages job postings. Background tasks live in lib/job.
type JobService struct {
	jobs *repository.JobRepository
}

func NewJobService(jobs *repository.JobRepository) *JobService {
	return &JobService{jobs: jobs}
}

func (s *JobService) Create(ctx context.Context, payload *job.CreateJobPayload) (*job.Response, error) {
	j, err := s.jobs.Create(ctx, payload)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Int("job_id", j.ID).Str("company", j.CompanyHandle).Msg("job created")
	return &job.Response{Job: j}, nil
}

func (s *JobService) Search(ctx context.Context, query *job.SearchJobsQuery) (*job.ListResponse, error) {
	filters, err := query.Filters()
	if err != nil {
		return nil, errs.ValidationError(err)
	}

	jobs, err := s.jobs.FindAll(ctx, filters)
	if err != nil {
		return nil, err
	}

	return &job.ListResponse{Jobs: jobs}, nil
}

func (s *JobService) Get(ctx context.Context, payload *job.GetJobPayload) (*job.Response, error) {
	j, err := s.jobs.Get(ctx, payload.ID)
	if err != nil {
		return nil, err
	}
	return &job.Response{Job: j}, nil
}

func (s *JobService) Update(ctx context.Context, payload *job.UpdateJobPayload) (*job.Response, error) {
	j, err := s.jobs.Update(ctx, payload.ID, payload.UpdateData())
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Int("job_id", j.ID).Msg("job updated")
	return &job.Response{Job: j}, nil
}

func (s *JobService) Delete(ctx context.Context, payload *job.DeleteJobPayload) (*model.DeletedResponse, error) {
	if err := s.jobs.Remove(ctx, payload.ID); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Int("job_id", payload.ID).Msg("job deleted")
	return &model.DeletedResponse{Deleted: payload.ID}, nil
}
