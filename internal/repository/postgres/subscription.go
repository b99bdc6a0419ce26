package postgres

import (
	"context"

	"github.com/revolck-lab/api-advancemais-sub001/internal/domain"
	apperrors "github.com/revolck-lab/api-advancemais-sub001/pkg/errors"
)

// SubscriptionRepository is the PostgreSQL implementation of
// repository.SubscriptionRepository.
type SubscriptionRepository struct {
	db DB
}

// NewSubscriptionRepository creates a new subscription repository.
func NewSubscriptionRepository(db DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Create inserts a new subscription.
func (r *SubscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	query := `
		INSERT INTO subscriptions (id, company_id, plan_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING started_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		sub.ID, sub.CompanyID, sub.PlanID, sub.Status,
	).Scan(&sub.StartedAt, &sub.UpdatedAt)
	if err != nil {
		return apperrors.Wrap(err, "create subscription")
	}
	return nil
}

// GetActiveByCompany retrieves the company's active subscription with its plan.
func (r *SubscriptionRepository) GetActiveByCompany(ctx context.Context, companyID string) (*domain.Subscription, error) {
	query := `
		SELECT s.id, s.company_id, s.plan_id, s.status, s.started_at, s.updated_at,
			p.id, p.name, p.max_jobs, p.price_cents, p.status
		FROM subscriptions s
		JOIN plans p ON p.id = s.plan_id
		WHERE s.company_id = $1 AND s.status = $2`

	var (
		sub  domain.Subscription
		plan domain.Plan
	)
	err := r.db.QueryRow(ctx, query, companyID, domain.SubscriptionActive).Scan(
		&sub.ID, &sub.CompanyID, &sub.PlanID, &sub.Status, &sub.StartedAt, &sub.UpdatedAt,
		&plan.ID, &plan.Name, &plan.MaxJobs, &plan.PriceCents, &plan.Status,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFound("subscription", companyID)
		}
		return nil, apperrors.Wrap(err, "get active subscription")
	}
	sub.Plan = &plan
	return &sub, nil
}

// UpdatePlan moves the subscription to a different plan.
func (r *SubscriptionRepository) UpdatePlan(ctx context.Context, id string, planID int) error {
	query := `UPDATE subscriptions SET plan_id = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, planID)
	if err != nil {
		return apperrors.Wrap(err, "update subscription plan")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("subscription", id)
	}
	return nil
}
