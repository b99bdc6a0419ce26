package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/revolck-lab/api-advancemais-sub001/internal/domain"
	"github.com/revolck-lab/api-advancemais-sub001/internal/repository"
	apperrors "github.com/revolck-lab/api-advancemais-sub001/pkg/errors"
)

// JobService implements job posting management for companies.
type JobService struct {
	jobs   repository.JobRepository
	subs   repository.SubscriptionRepository
	logger *slog.Logger
}

// NewJobService creates a new job service.
func NewJobService(jobs repository.JobRepository, subs repository.SubscriptionRepository, logger *slog.Logger) *JobService {
	return &JobService{jobs: jobs, subs: subs, logger: logger}
}

// CreateJobInput carries the fields for a new job posting.
type CreateJobInput struct {
	Title       string
	Description string
	Area        string
	City        string
	State       string
}

// CreateJob publishes a new posting for the company, enforcing the plan's
// active-posting limit.
func (s *JobService) CreateJob(ctx context.Context, companyID string, input CreateJobInput) (*domain.Job, error) {
	sub, err := s.subs.GetActiveByCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Forbidden("company has no active subscription")
		}
		return nil, apperrors.Internal(err)
	}

	count, err := s.jobs.CountActiveByCompany(ctx, companyID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if count >= sub.Plan.MaxJobs {
		return nil, apperrors.Forbidden("active job posting limit reached for the current plan")
	}

	job := &domain.Job{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Title:       input.Title,
		Description: input.Description,
		Area:        input.Area,
		City:        input.City,
		State:       input.State,
		Status:      domain.JobActive,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "job created",
		slog.String("job_id", job.ID),
		slog.String("company_id", companyID),
	)
	return job, nil
}

// GetJob retrieves a posting by id.
func (s *JobService) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	return s.jobs.GetByID(ctx, id)
}

// ListActiveJobs returns all active postings across companies, newest first.
func (s *JobService) ListActiveJobs(ctx context.Context) ([]domain.Job, error) {
	return s.jobs.ListActive(ctx)
}

// ListCompanyJobs returns the company's active postings.
func (s *JobService) ListCompanyJobs(ctx context.Context, companyID string) ([]domain.Job, error) {
	return s.jobs.ListActiveByCompany(ctx, companyID)
}

// DisableJob deactivates a posting. Only the owning company may do so.
func (s *JobService) DisableJob(ctx context.Context, companyID, jobID string) error {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if job.CompanyID != companyID {
		return apperrors.Forbidden("job belongs to another company")
	}
	return s.jobs.SetStatus(ctx, jobID, domain.JobDisabled)
}
