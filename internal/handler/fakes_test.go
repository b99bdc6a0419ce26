package handler

import (
	"context"
	"io"
	"log/slog"
	"strconv"

	"github.com/revolck-lab/api-advancemais-sub001/internal/domain"
	apperrors "github.com/revolck-lab/api-advancemais-sub001/pkg/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type memUserRepo struct {
	users map[string]*domain.User
}

func newMemUserRepo() *memUserRepo { return &memUserRepo{users: make(map[string]*domain.User)} }

func (m *memUserRepo) Create(_ context.Context, u *domain.User) error {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return apperrors.AlreadyExists("user", "email", u.Email)
		}
		if existing.CPF == u.CPF {
			return apperrors.AlreadyExists("user", "cpf", u.CPF)
		}
	}
	m.users[u.ID] = u
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.NotFound("user", id)
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("user", email)
}

func (m *memUserRepo) GetByCPF(_ context.Context, cpf string) (*domain.User, error) {
	for _, u := range m.users {
		if u.CPF == cpf {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("user", cpf)
}

type memCompanyRepo struct {
	companies map[string]*domain.Company
}

func newMemCompanyRepo() *memCompanyRepo {
	return &memCompanyRepo{companies: make(map[string]*domain.Company)}
}

func (m *memCompanyRepo) Create(_ context.Context, c *domain.Company) error {
	for _, existing := range m.companies {
		if existing.Email == c.Email {
			return apperrors.AlreadyExists("company", "email", c.Email)
		}
		if existing.CNPJ == c.CNPJ {
			return apperrors.AlreadyExists("company", "cnpj", c.CNPJ)
		}
	}
	m.companies[c.ID] = c
	return nil
}

func (m *memCompanyRepo) GetByID(_ context.Context, id string) (*domain.Company, error) {
	if c, ok := m.companies[id]; ok {
		return c, nil
	}
	return nil, apperrors.NotFound("company", id)
}

func (m *memCompanyRepo) GetByEmail(_ context.Context, email string) (*domain.Company, error) {
	for _, c := range m.companies {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, apperrors.NotFound("company", email)
}

func (m *memCompanyRepo) GetByCNPJ(_ context.Context, cnpj string) (*domain.Company, error) {
	for _, c := range m.companies {
		if c.CNPJ == cnpj {
			return c, nil
		}
	}
	return nil, apperrors.NotFound("company", cnpj)
}

type memRoleRepo struct{}

var seededRoles = []*domain.Role{
	{ID: 1, Name: domain.RoleAluno, Level: domain.LevelAluno, Status: 1},
	{ID: 2, Name: domain.RoleEmpresa, Level: domain.LevelEmpresa, Status: 1},
	{ID: 3, Name: domain.RoleRecrutador, Level: domain.LevelRecrutador, Status: 1},
	{ID: 4, Name: domain.RoleAdministrador, Level: domain.LevelAdministrador, Status: 1},
}

func (memRoleRepo) GetByName(_ context.Context, name string) (*domain.Role, error) {
	for _, r := range seededRoles {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, apperrors.NotFound("role", name)
}

func (memRoleRepo) GetByID(_ context.Context, id int) (*domain.Role, error) {
	for _, r := range seededRoles {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, apperrors.NotFound("role", strconv.Itoa(id))
}

type memAddressRepo struct{}

func (memAddressRepo) Create(_ context.Context, _ *domain.Address) error { return nil }

type memJobRepo struct {
	jobs []*domain.Job
}

func (m *memJobRepo) Create(_ context.Context, job *domain.Job) error {
	m.jobs = append(m.jobs, job)
	return nil
}

func (m *memJobRepo) GetByID(_ context.Context, id string) (*domain.Job, error) {
	for _, j := range m.jobs {
		if j.ID == id {
			return j, nil
		}
	}
	return nil, apperrors.NotFound("job", id)
}

func (m *memJobRepo) ListActive(_ context.Context) ([]domain.Job, error) {
	var out []domain.Job
	for _, j := range m.jobs {
		if j.Status == domain.JobActive {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (m *memJobRepo) ListActiveByCompany(_ context.Context, companyID string) ([]domain.Job, error) {
	var out []domain.Job
	for _, j := range m.jobs {
		if j.CompanyID == companyID && j.Status == domain.JobActive {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (m *memJobRepo) CountActiveByCompany(ctx context.Context, companyID string) (int, error) {
	jobs, _ := m.ListActiveByCompany(ctx, companyID)
	return len(jobs), nil
}

func (m *memJobRepo) SetStatus(_ context.Context, id string, status int) error {
	for _, j := range m.jobs {
		if j.ID == id {
			j.Status = status
			return nil
		}
	}
	return apperrors.NotFound("job", id)
}

func (m *memJobRepo) DisableByIDs(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if err := m.SetStatus(ctx, id, domain.JobDisabled); err != nil {
			return err
		}
	}
	return nil
}

type memPlanRepo struct{}

var seededPlans = []*domain.Plan{
	{ID: 1, Name: "Basico", MaxJobs: 2, PriceCents: 4990, Status: 1},
	{ID: 2, Name: "Profissional", MaxJobs: 5, PriceCents: 9990, Status: 1},
}

func (memPlanRepo) GetByID(_ context.Context, id int) (*domain.Plan, error) {
	for _, p := range seededPlans {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, apperrors.NotFound("plan", strconv.Itoa(id))
}

func (memPlanRepo) List(_ context.Context) ([]domain.Plan, error) {
	out := make([]domain.Plan, 0, len(seededPlans))
	for _, p := range seededPlans {
		out = append(out, *p)
	}
	return out, nil
}

type memSubRepo struct {
	subs map[string]*domain.Subscription
}

func newMemSubRepo() *memSubRepo { return &memSubRepo{subs: make(map[string]*domain.Subscription)} }

func (m *memSubRepo) Create(_ context.Context, sub *domain.Subscription) error {
	m.subs[sub.CompanyID] = sub
	return nil
}

func (m *memSubRepo) GetActiveByCompany(_ context.Context, companyID string) (*domain.Subscription, error) {
	if s, ok := m.subs[companyID]; ok && s.Status == domain.SubscriptionActive {
		return s, nil
	}
	return nil, apperrors.NotFound("subscription", companyID)
}

func (m *memSubRepo) UpdatePlan(_ context.Context, id string, planID int) error {
	for _, s := range m.subs {
		if s.ID == id {
			s.PlanID = planID
			return nil
		}
	}
	return apperrors.NotFound("subscription", id)
}

type memBannerRepo struct {
	banners []*domain.Banner
}

func (m *memBannerRepo) Create(_ context.Context, banner *domain.Banner) error {
	m.banners = append(m.banners, banner)
	return nil
}

func (m *memBannerRepo) GetByID(_ context.Context, id string) (*domain.Banner, error) {
	for _, b := range m.banners {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, apperrors.NotFound("banner", id)
}

func (m *memBannerRepo) ListActive(_ context.Context) ([]domain.Banner, error) {
	var out []domain.Banner
	for _, b := range m.banners {
		if b.Active {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memBannerRepo) Update(_ context.Context, banner *domain.Banner) error {
	for i, b := range m.banners {
		if b.ID == banner.ID {
			m.banners[i] = banner
			return nil
		}
	}
	return apperrors.NotFound("banner", banner.ID)
}

func (m *memBannerRepo) Delete(_ context.Context, id string) error {
	for i, b := range m.banners {
		if b.ID == id {
			m.banners = append(m.banners[:i], m.banners[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("banner", id)
}
