package repository

import (
	"context"

	"github.com/revolck-lab/api-advancemais-sub001/internal/domain"
)

// UserRepository defines persistence operations for user principals.
// Lookups return the user joined with its role.
type UserRepository interface {
	// Create inserts a new user. A unique-constraint violation on email or
	// cpf is reported as an AlreadyExists error.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique identifier.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByCPF retrieves a user by their national personal ID.
	GetByCPF(ctx context.Context, cpf string) (*domain.User, error)
}

// CompanyRepository defines persistence operations for company principals.
type CompanyRepository interface {
	// Create inserts a new company. A unique-constraint violation on email
	// or cnpj is reported as an AlreadyExists error.
	Create(ctx context.Context, company *domain.Company) error

	// GetByID retrieves a company by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Company, error)

	// GetByEmail retrieves a company by its email address.
	GetByEmail(ctx context.Context, email string) (*domain.Company, error)

	// GetByCNPJ retrieves a company by its national company ID.
	GetByCNPJ(ctx context.Context, cnpj string) (*domain.Company, error)
}

// RoleRepository defines lookup operations for roles. Roles are seeded by
// migration; this repository never mutates them.
type RoleRepository interface {
	// GetByName retrieves a role by its unique name.
	GetByName(ctx context.Context, name string) (*domain.Role, error)

	// GetByID retrieves a role by its identifier.
	GetByID(ctx context.Context, id int) (*domain.Role, error)
}

// AddressRepository defines persistence operations for addresses.
type AddressRepository interface {
	// Create inserts a new address. Addresses are created before the
	// principal that owns them.
	Create(ctx context.Context, address *domain.Address) error
}

// JobRepository defines persistence operations for job postings.
type JobRepository interface {
	// Create inserts a new job posting.
	Create(ctx context.Context, job *domain.Job) error

	// GetByID retrieves a job posting by its identifier.
	GetByID(ctx context.Context, id string) (*domain.Job, error)

	// ListActive returns all active postings, newest first.
	ListActive(ctx context.Context) ([]domain.Job, error)

	// ListActiveByCompany returns the company's active postings, oldest first.
	ListActiveByCompany(ctx context.Context, companyID string) ([]domain.Job, error)

	// CountActiveByCompany returns the number of active postings owned by
	// the company.
	CountActiveByCompany(ctx context.Context, companyID string) (int, error)

	// SetStatus updates the status of a single posting.
	SetStatus(ctx context.Context, id string, status int) error

	// DisableByIDs marks the given postings as disabled.
	DisableByIDs(ctx context.Context, ids []string) error
}

// PlanRepository defines lookup operations for subscription plans.
type PlanRepository interface {
	// GetByID retrieves a plan by its identifier.
	GetByID(ctx context.Context, id int) (*domain.Plan, error)

	// List returns all active plans.
	List(ctx context.Context) ([]domain.Plan, error)
}

// SubscriptionRepository defines persistence operations for company subscriptions.
type SubscriptionRepository interface {
	// Create inserts a new subscription.
	Create(ctx context.Context, sub *domain.Subscription) error

	// GetActiveByCompany retrieves the company's active subscription joined
	// with its plan.
	GetActiveByCompany(ctx context.Context, companyID string) (*domain.Subscription, error)

	// UpdatePlan moves the subscription to a different plan.
	UpdatePlan(ctx context.Context, id string, planID int) error
}

// BannerRepository defines persistence operations for CMS banners.
type BannerRepository interface {
	// Create inserts a new banner.
	Create(ctx context.Context, banner *domain.Banner) error

	// GetByID retrieves a banner by its identifier.
	GetByID(ctx context.Context, id string) (*domain.Banner, error)

	// ListActive returns all active banners ordered by position.
	ListActive(ctx context.Context) ([]domain.Banner, error)

	// Update modifies an existing banner.
	Update(ctx context.Context, banner *domain.Banner) error

	// Delete removes a banner.
	Delete(ctx context.Context, id string) error
}
