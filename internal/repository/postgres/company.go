package postgres

import (
	"context"

	"github.com/revolck-lab/api-advancemais-sub001/internal/domain"
	apperrors "github.com/revolck-lab/api-advancemais-sub001/pkg/errors"
)

// CompanyRepository is the PostgreSQL implementation of repository.CompanyRepository.
type CompanyRepository struct {
	db DB
}

// NewCompanyRepository creates a new company repository.
func NewCompanyRepository(db DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

const companyColumns = `c.id, c.email, c.password_hash, c.trade_name, c.cnpj,
		c.responsible_name, c.phone, c.whatsapp, c.code, c.role_id,
		c.address_id, c.status, c.created_at, c.updated_at,
		r.id, r.name, r.level, r.status`

// Create inserts a new company row.
func (r *CompanyRepository) Create(ctx context.Context, company *domain.Company) error {
	query := `
		INSERT INTO companies (id, email, password_hash, trade_name, cnpj,
			responsible_name, phone, whatsapp, code, role_id, address_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		company.ID, company.Email, company.PasswordHash, company.TradeName,
		company.CNPJ, company.ContactName, company.Phone, company.WhatsApp,
		company.Code, company.RoleID, company.AddressID, company.Status,
	).Scan(&company.CreatedAt, &company.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			if uniqueViolationField(err) == "cnpj" {
				return apperrors.AlreadyExists("company", "cnpj", company.CNPJ)
			}
			return apperrors.AlreadyExists("company", "email", company.Email)
		}
		return apperrors.Wrap(err, "create company")
	}

	return nil
}

// GetByID retrieves a company and its role.
func (r *CompanyRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	query := `
		SELECT ` + companyColumns + `
		FROM companies c
		JOIN roles r ON r.id = c.role_id
		WHERE c.id = $1`

	company, err := r.scanCompany(ctx, query, id)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFound("company", id)
		}
		return nil, apperrors.Wrap(err, "get company by id")
	}
	return company, nil
}

// GetByEmail retrieves a company and its role by email.
func (r *CompanyRepository) GetByEmail(ctx context.Context, email string) (*domain.Company, error) {
	query := `
		SELECT ` + companyColumns + `
		FROM companies c
		JOIN roles r ON r.id = c.role_id
		WHERE c.email = $1`

	company, err := r.scanCompany(ctx, query, email)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFound("company", email)
		}
		return nil, apperrors.Wrap(err, "get company by email")
	}
	return company, nil
}

// GetByCNPJ retrieves a company and its role by national company ID.
func (r *CompanyRepository) GetByCNPJ(ctx context.Context, cnpj string) (*domain.Company, error) {
	query := `
		SELECT ` + companyColumns + `
		FROM companies c
		JOIN roles r ON r.id = c.role_id
		WHERE c.cnpj = $1`

	company, err := r.scanCompany(ctx, query, cnpj)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFound("company", cnpj)
		}
		return nil, apperrors.Wrap(err, "get company by cnpj")
	}
	return company, nil
}

func (r *CompanyRepository) scanCompany(ctx context.Context, query string, arg any) (*domain.Company, error) {
	var (
		company domain.Company
		role    domain.Role
	)
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&company.ID, &company.Email, &company.PasswordHash, &company.TradeName,
		&company.CNPJ, &company.ContactName, &company.Phone, &company.WhatsApp,
		&company.Code, &company.RoleID, &company.AddressID, &company.Status,
		&company.CreatedAt, &company.UpdatedAt,
		&role.ID, &role.Name, &role.Level, &role.Status,
	)
	if err != nil {
		return nil, err
	}
	company.Role = &role
	return &company, nil
}
