package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revolck-lab/api-advancemais-sub001/internal/domain"
	apperrors "github.com/revolck-lab/api-advancemais-sub001/pkg/errors"
)

type subFixture struct {
	svc   *SubscriptionService
	subs  *fakeSubRepo
	plans *fakePlanRepo
	jobs  *fakeJobRepo
}

func newSubFixture() *subFixture {
	f := &subFixture{
		subs:  newFakeSubRepo(),
		plans: newFakePlanRepo(),
		jobs:  &fakeJobRepo{},
	}
	f.svc = NewSubscriptionService(f.subs, f.plans, f.jobs, noopPublisher(), testLogger())
	return f
}

func (f *subFixture) seedActiveJobs(companyID string, n int) {
	for i := 0; i < n; i++ {
		f.jobs.jobs = append(f.jobs.jobs, &domain.Job{
			ID:        fmt.Sprintf("j-%d", i+1),
			CompanyID: companyID,
			Status:    domain.JobActive,
		})
	}
}

func TestSubscriptionService_Subscribe(t *testing.T) {
	f := newSubFixture()

	sub, err := f.svc.Subscribe(context.Background(), "c-1", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, sub.PlanID)
	assert.Equal(t, domain.SubscriptionActive, sub.Status)
	require.NotNil(t, sub.Plan)
	assert.Equal(t, 2, sub.Plan.MaxJobs)
}

func TestSubscriptionService_Subscribe_AlreadySubscribed(t *testing.T) {
	f := newSubFixture()
	_, err := f.svc.Subscribe(context.Background(), "c-1", 1)
	require.NoError(t, err)

	_, err = f.svc.Subscribe(context.Background(), "c-1", 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrAlreadyExists))
}

func TestSubscriptionService_Subscribe_UnknownPlan(t *testing.T) {
	f := newSubFixture()

	_, err := f.svc.Subscribe(context.Background(), "c-1", 42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestSubscriptionService_ChangePlan_Upgrade(t *testing.T) {
	f := newSubFixture()
	_, err := f.svc.Subscribe(context.Background(), "c-1", 1)
	require.NoError(t, err)
	f.seedActiveJobs("c-1", 2)

	sub, disabled, err := f.svc.ChangePlan(context.Background(), "c-1", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, sub.PlanID)
	assert.Zero(t, disabled)
}

func TestSubscriptionService_ChangePlan_DowngradeDisablesNewest(t *testing.T) {
	f := newSubFixture()
	_, err := f.svc.Subscribe(context.Background(), "c-1", 2)
	require.NoError(t, err)
	f.seedActiveJobs("c-1", 5)

	// Moving from 5 allowed postings to 2 disables the 3 newest.
	sub, disabled, err := f.svc.ChangePlan(context.Background(), "c-1", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, sub.PlanID)
	assert.Equal(t, 3, disabled)

	remaining, err := f.jobs.ListActiveByCompany(context.Background(), "c-1")
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	assert.Equal(t, "j-1", remaining[0].ID)
	assert.Equal(t, "j-2", remaining[1].ID)
}

func TestSubscriptionService_ChangePlan_NoSubscription(t *testing.T) {
	f := newSubFixture()

	_, _, err := f.svc.ChangePlan(context.Background(), "c-1", 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestSubscriptionService_ListPlans(t *testing.T) {
	f := newSubFixture()

	plans, err := f.svc.ListPlans(context.Background())
	require.NoError(t, err)
	assert.Len(t, plans, 2)
}
