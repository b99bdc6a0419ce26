package service

import (
	"context"
	"io"
	"log/slog"
	"strconv"

	"github.com/revolck-lab/api-advancemais-sub001/internal/domain"
	"github.com/revolck-lab/api-advancemais-sub001/internal/event"
	apperrors "github.com/revolck-lab/api-advancemais-sub001/pkg/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func noopPublisher() *event.Publisher {
	return event.NewPublisher(nil, testLogger())
}

type fakeUserRepo struct {
	users     map[string]*domain.User
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) add(u *domain.User) { f.users[u.ID] = u }

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.NotFound("user", id)
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("user", email)
}

func (f *fakeUserRepo) GetByCPF(_ context.Context, cpf string) (*domain.User, error) {
	for _, u := range f.users {
		if u.CPF == cpf {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("user", cpf)
}

type fakeCompanyRepo struct {
	companies map[string]*domain.Company
	createErr error
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[string]*domain.Company)}
}

func (f *fakeCompanyRepo) add(c *domain.Company) { f.companies[c.ID] = c }

func (f *fakeCompanyRepo) Create(_ context.Context, company *domain.Company) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.companies[company.ID] = company
	return nil
}

func (f *fakeCompanyRepo) GetByID(_ context.Context, id string) (*domain.Company, error) {
	if c, ok := f.companies[id]; ok {
		return c, nil
	}
	return nil, apperrors.NotFound("company", id)
}

func (f *fakeCompanyRepo) GetByEmail(_ context.Context, email string) (*domain.Company, error) {
	for _, c := range f.companies {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, apperrors.NotFound("company", email)
}

func (f *fakeCompanyRepo) GetByCNPJ(_ context.Context, cnpj string) (*domain.Company, error) {
	for _, c := range f.companies {
		if c.CNPJ == cnpj {
			return c, nil
		}
	}
	return nil, apperrors.NotFound("company", cnpj)
}

type fakeRoleRepo struct {
	roles []*domain.Role
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: []*domain.Role{
		{ID: 1, Name: domain.RoleAluno, Level: domain.LevelAluno, Status: 1},
		{ID: 2, Name: domain.RoleEmpresa, Level: domain.LevelEmpresa, Status: 1},
		{ID: 3, Name: domain.RoleRecrutador, Level: domain.LevelRecrutador, Status: 1},
		{ID: 4, Name: domain.RoleAdministrador, Level: domain.LevelAdministrador, Status: 1},
	}}
}

func (f *fakeRoleRepo) GetByName(_ context.Context, name string) (*domain.Role, error) {
	for _, r := range f.roles {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, apperrors.NotFound("role", name)
}

func (f *fakeRoleRepo) GetByID(_ context.Context, id int) (*domain.Role, error) {
	for _, r := range f.roles {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, apperrors.NotFound("role", strconv.Itoa(id))
}

type fakeAddressRepo struct {
	created []*domain.Address
}

func (f *fakeAddressRepo) Create(_ context.Context, address *domain.Address) error {
	f.created = append(f.created, address)
	return nil
}

type fakeJobRepo struct {
	jobs []*domain.Job
}

func (f *fakeJobRepo) Create(_ context.Context, job *domain.Job) error {
	f.jobs = append(f.jobs, job)
	return nil
}

func (f *fakeJobRepo) GetByID(_ context.Context, id string) (*domain.Job, error) {
	for _, j := range f.jobs {
		if j.ID == id {
			return j, nil
		}
	}
	return nil, apperrors.NotFound("job", id)
}

func (f *fakeJobRepo) ListActive(_ context.Context) ([]domain.Job, error) {
	var out []domain.Job
	for i := len(f.jobs) - 1; i >= 0; i-- {
		if f.jobs[i].Status == domain.JobActive {
			out = append(out, *f.jobs[i])
		}
	}
	return out, nil
}

func (f *fakeJobRepo) ListActiveByCompany(_ context.Context, companyID string) ([]domain.Job, error) {
	// Insertion order stands in for created_at ascending.
	var out []domain.Job
	for _, j := range f.jobs {
		if j.CompanyID == companyID && j.Status == domain.JobActive {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (f *fakeJobRepo) CountActiveByCompany(ctx context.Context, companyID string) (int, error) {
	jobs, _ := f.ListActiveByCompany(ctx, companyID)
	return len(jobs), nil
}

func (f *fakeJobRepo) SetStatus(_ context.Context, id string, status int) error {
	for _, j := range f.jobs {
		if j.ID == id {
			j.Status = status
			return nil
		}
	}
	return apperrors.NotFound("job", id)
}

func (f *fakeJobRepo) DisableByIDs(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if err := f.SetStatus(ctx, id, domain.JobDisabled); err != nil {
			return err
		}
	}
	return nil
}

type fakePlanRepo struct {
	plans []*domain.Plan
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: []*domain.Plan{
		{ID: 1, Name: "Basico", MaxJobs: 2, PriceCents: 4990, Status: 1},
		{ID: 2, Name: "Profissional", MaxJobs: 5, PriceCents: 9990, Status: 1},
	}}
}

func (f *fakePlanRepo) GetByID(_ context.Context, id int) (*domain.Plan, error) {
	for _, p := range f.plans {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, apperrors.NotFound("plan", strconv.Itoa(id))
}

func (f *fakePlanRepo) List(_ context.Context) ([]domain.Plan, error) {
	out := make([]domain.Plan, 0, len(f.plans))
	for _, p := range f.plans {
		out = append(out, *p)
	}
	return out, nil
}

type fakeSubRepo struct {
	subs map[string]*domain.Subscription
}

func newFakeSubRepo() *fakeSubRepo {
	return &fakeSubRepo{subs: make(map[string]*domain.Subscription)}
}

func (f *fakeSubRepo) Create(_ context.Context, sub *domain.Subscription) error {
	f.subs[sub.CompanyID] = sub
	return nil
}

func (f *fakeSubRepo) GetActiveByCompany(_ context.Context, companyID string) (*domain.Subscription, error) {
	if s, ok := f.subs[companyID]; ok && s.Status == domain.SubscriptionActive {
		return s, nil
	}
	return nil, apperrors.NotFound("subscription", companyID)
}

func (f *fakeSubRepo) UpdatePlan(_ context.Context, id string, planID int) error {
	for _, s := range f.subs {
		if s.ID == id {
			s.PlanID = planID
			return nil
		}
	}
	return apperrors.NotFound("subscription", id)
}

type fakeBannerRepo struct {
	banners  []*domain.Banner
	listHits int
}

func (f *fakeBannerRepo) Create(_ context.Context, banner *domain.Banner) error {
	f.banners = append(f.banners, banner)
	return nil
}

func (f *fakeBannerRepo) GetByID(_ context.Context, id string) (*domain.Banner, error) {
	for _, b := range f.banners {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, apperrors.NotFound("banner", id)
}

func (f *fakeBannerRepo) ListActive(_ context.Context) ([]domain.Banner, error) {
	f.listHits++
	var out []domain.Banner
	for _, b := range f.banners {
		if b.Active {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBannerRepo) Update(_ context.Context, banner *domain.Banner) error {
	for i, b := range f.banners {
		if b.ID == banner.ID {
			f.banners[i] = banner
			return nil
		}
	}
	return apperrors.NotFound("banner", banner.ID)
}

func (f *fakeBannerRepo) Delete(_ context.Context, id string) error {
	for i, b := range f.banners {
		if b.ID == id {
			f.banners = append(f.banners[:i], f.banners[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("banner", id)
}
