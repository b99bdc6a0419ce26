package postgres

import (
	"context"

	"github.com/revolck-lab/api-advancemais-sub001/internal/domain"
	apperrors "github.com/revolck-lab/api-advancemais-sub001/pkg/errors"
)

// JobRepository is the PostgreSQL implementation of repository.JobRepository.
type JobRepository struct {
	db DB
}

// NewJobRepository creates a new job repository.
func NewJobRepository(db DB) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `id, company_id, title, description, area, city, state,
		status, created_at, updated_at`

// Create inserts a new job posting.
func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	query := `
		INSERT INTO jobs (id, company_id, title, description, area, city, state, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		job.ID, job.CompanyID, job.Title, job.Description,
		job.Area, job.City, job.State, job.Status,
	).Scan(&job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return apperrors.Wrap(err, "create job")
	}
	return nil
}

// GetByID retrieves a job posting.
func (r *JobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	var job domain.Job
	err := r.db.QueryRow(ctx, query, id).Scan(
		&job.ID, &job.CompanyID, &job.Title, &job.Description,
		&job.Area, &job.City, &job.State, &job.Status,
		&job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFound("job", id)
		}
		return nil, apperrors.Wrap(err, "get job by id")
	}
	return &job, nil
}

// ListActive returns all active postings, newest first.
func (r *JobRepository) ListActive(ctx context.Context) ([]domain.Job, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM jobs
		WHERE status = $1
		ORDER BY created_at DESC`

	return r.list(ctx, query, domain.JobActive)
}

// ListActiveByCompany returns the company's active postings, oldest first.
// The ordering matters to plan downgrades: the oldest postings survive.
func (r *JobRepository) ListActiveByCompany(ctx context.Context, companyID string) ([]domain.Job, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM jobs
		WHERE company_id = $1 AND status = $2
		ORDER BY created_at ASC`

	return r.list(ctx, query, companyID, domain.JobActive)
}

// CountActiveByCompany returns the number of active postings the company owns.
func (r *JobRepository) CountActiveByCompany(ctx context.Context, companyID string) (int, error) {
	query := `SELECT COUNT(*) FROM jobs WHERE company_id = $1 AND status = $2`

	var count int
	err := r.db.QueryRow(ctx, query, companyID, domain.JobActive).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "count active jobs")
	}
	return count, nil
}

// SetStatus updates the status of a single posting.
func (r *JobRepository) SetStatus(ctx context.Context, id string, status int) error {
	query := `UPDATE jobs SET status = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		return apperrors.Wrap(err, "update job status")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("job", id)
	}
	return nil
}

// DisableByIDs marks the given postings as disabled.
func (r *JobRepository) DisableByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query := `UPDATE jobs SET status = $2, updated_at = NOW() WHERE id = ANY($1)`

	if _, err := r.db.Exec(ctx, query, ids, domain.JobDisabled); err != nil {
		return apperrors.Wrap(err, "disable jobs")
	}
	return nil
}

func (r *JobRepository) list(ctx context.Context, query string, args ...any) ([]domain.Job, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "list jobs")
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		var job domain.Job
		if err := rows.Scan(
			&job.ID, &job.CompanyID, &job.Title, &job.Description,
			&job.Area, &job.City, &job.State, &job.Status,
			&job.CreatedAt, &job.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "scan job")
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "iterate jobs")
	}
	return jobs, nil
}
