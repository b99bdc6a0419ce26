package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/revolck-lab/api-advancemais-sub001/internal/domain"
	"github.com/revolck-lab/api-advancemais-sub001/internal/event"
	"github.com/revolck-lab/api-advancemais-sub001/internal/repository"
	apperrors "github.com/revolck-lab/api-advancemais-sub001/pkg/errors"
)

// SubscriptionService manages company plans. Downgrades shrink the allowed
// number of active postings; the excess is disabled immediately, newest
// postings first.
type SubscriptionService struct {
	subs   repository.SubscriptionRepository
	plans  repository.PlanRepository
	jobs   repository.JobRepository
	events *event.Publisher
	logger *slog.Logger
}

// NewSubscriptionService creates a new subscription service.
func NewSubscriptionService(
	subs repository.SubscriptionRepository,
	plans repository.PlanRepository,
	jobs repository.JobRepository,
	events *event.Publisher,
	logger *slog.Logger,
) *SubscriptionService {
	return &SubscriptionService{subs: subs, plans: plans, jobs: jobs, events: events, logger: logger}
}

// ListPlans returns the plans available for subscription.
func (s *SubscriptionService) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	return s.plans.List(ctx)
}

// GetSubscription returns the company's active subscription.
func (s *SubscriptionService) GetSubscription(ctx context.Context, companyID string) (*domain.Subscription, error) {
	return s.subs.GetActiveByCompany(ctx, companyID)
}

// Subscribe creates the company's first subscription. Companies with an
// active subscription must use ChangePlan instead.
func (s *SubscriptionService) Subscribe(ctx context.Context, companyID string, planID int) (*domain.Subscription, error) {
	if _, err := s.subs.GetActiveByCompany(ctx, companyID); err == nil {
		return nil, apperrors.AlreadyExists("subscription", "company_id", companyID)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.Internal(err)
	}

	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}

	sub := &domain.Subscription{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		PlanID:    plan.ID,
		Status:    domain.SubscriptionActive,
	}
	if err := s.subs.Create(ctx, sub); err != nil {
		return nil, err
	}
	sub.Plan = plan

	s.logger.InfoContext(ctx, "subscription created",
		slog.String("company_id", companyID),
		slog.Int("plan_id", plan.ID),
	)
	s.events.SubscriptionChanged(ctx, event.SubscriptionChanged{
		CompanyID: companyID,
		PlanID:    plan.ID,
	})

	return sub, nil
}

// ChangePlan moves the company to a different plan. On downgrade, active
// postings beyond the new limit are disabled; the oldest survive.
func (s *SubscriptionService) ChangePlan(ctx context.Context, companyID string, planID int) (*domain.Subscription, int, error) {
	sub, err := s.subs.GetActiveByCompany(ctx, companyID)
	if err != nil {
		return nil, 0, err
	}

	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, 0, err
	}

	disabled, err := s.enforcePostingLimit(ctx, companyID, plan.MaxJobs)
	if err != nil {
		return nil, 0, err
	}

	if err := s.subs.UpdatePlan(ctx, sub.ID, plan.ID); err != nil {
		return nil, 0, err
	}
	sub.PlanID = plan.ID
	sub.Plan = plan

	s.logger.InfoContext(ctx, "subscription plan changed",
		slog.String("company_id", companyID),
		slog.Int("plan_id", plan.ID),
		slog.Int("disabled_jobs", disabled),
	)
	s.events.SubscriptionChanged(ctx, event.SubscriptionChanged{
		CompanyID:    companyID,
		PlanID:       plan.ID,
		DisabledJobs: disabled,
	})

	return sub, disabled, nil
}

// enforcePostingLimit disables active postings beyond maxJobs and returns
// how many were disabled. Listing comes back oldest first, so the slice
// beyond the limit holds the newest postings.
func (s *SubscriptionService) enforcePostingLimit(ctx context.Context, companyID string, maxJobs int) (int, error) {
	jobs, err := s.jobs.ListActiveByCompany(ctx, companyID)
	if err != nil {
		return 0, apperrors.Internal(err)
	}
	if len(jobs) <= maxJobs {
		return 0, nil
	}

	excess := jobs[maxJobs:]
	ids := make([]string, 0, len(excess))
	for _, job := range excess {
		ids = append(ids, job.ID)
	}
	if err := s.jobs.DisableByIDs(ctx, ids); err != nil {
		return 0, apperrors.Internal(err)
	}
	return len(ids), nil
}
