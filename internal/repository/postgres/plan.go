package postgres

import (
	"context"
	"strconv"

	"github.com/revolck-lab/api-advancemais-sub001/internal/domain"
	apperrors "github.com/revolck-lab/api-advancemais-sub001/pkg/errors"
)

// PlanRepository is the PostgreSQL implementation of repository.PlanRepository.
type PlanRepository struct {
	db DB
}

// NewPlanRepository creates a new plan repository.
func NewPlanRepository(db DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// GetByID retrieves a plan.
func (r *PlanRepository) GetByID(ctx context.Context, id int) (*domain.Plan, error) {
	query := `SELECT id, name, max_jobs, price_cents, status FROM plans WHERE id = $1`

	var plan domain.Plan
	err := r.db.QueryRow(ctx, query, id).Scan(
		&plan.ID, &plan.Name, &plan.MaxJobs, &plan.PriceCents, &plan.Status,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFound("plan", strconv.Itoa(id))
		}
		return nil, apperrors.Wrap(err, "get plan by id")
	}
	return &plan, nil
}

// List returns all active plans ordered by id.
func (r *PlanRepository) List(ctx context.Context) ([]domain.Plan, error) {
	query := `SELECT id, name, max_jobs, price_cents, status FROM plans WHERE status = 1 ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "list plans")
	}
	defer rows.Close()

	var plans []domain.Plan
	for rows.Next() {
		var plan domain.Plan
		if err := rows.Scan(&plan.ID, &plan.Name, &plan.MaxJobs, &plan.PriceCents, &plan.Status); err != nil {
			return nil, apperrors.Wrap(err, "scan plan")
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "iterate plans")
	}
	return plans, nil
}
