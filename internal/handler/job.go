package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/jobly/internal/model"
	"github.com/deppfellow/jobly/internal/model/job"
	"github.com/deppfellow/jobly/internal/server"
	"github.com/deppfellow/jobly/internal/service"
)

// JobHandler serves job postings.
type JobHandler struct {
	Handler
	jobService *service.JobService
}

func NewJobHandler(s *server.Server, jobService *service.JobService) *JobHandler {
	return &JobHandler{
		Handler:    NewHandler(s),
		jobService: jobService,
	}
}

func (h *JobHandler) CreateJob(c echo.Context, payload *job.CreateJobPayload) (*job.Response, error) {
	return h.jobService.Create(c.Request().Context(), payload)
}

func (h *JobHandler) SearchJobs(c echo.Context, query *job.SearchJobsQuery) (*job.ListResponse, error) {
	return h.jobService.Search(c.Request().Context(), query)
}

func (h *JobHandler) GetJob(c echo.Context, payload *job.GetJobPayload) (*job.Response, error) {
	return h.jobService.Get(c.Request().Context(), payload)
}

func (h *JobHandler) UpdateJob(c echo.Context, payload *job.UpdateJobPayload) (*job.Response, error) {
	return h.jobService.Update(c.Request().Context(), payload)
}

func (h *JobHandler) DeleteJob(c echo.Context, payload *job.DeleteJobPayload) (*model.DeletedResponse, error) {
	return h.jobService.Delete(c.Request().Context(), payload)
}
