package postgres

import (
	"context"

	"github.com/revolck-lab/api-advancemais-sub001/internal/domain"
	apperrors "github.com/revolck-lab/api-advancemais-sub001/pkg/errors"
)

// UserRepository is the PostgreSQL implementation of repository.UserRepository.
type UserRepository struct {
	db DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `u.id, u.email, u.password_hash, u.name, u.cpf, u.birth_date,
		u.phone, u.gender_id, u.education_id, u.code, u.role_id, u.address_id,
		u.status, u.created_at, u.updated_at,
		r.id, r.name, r.level, r.status`

// Create inserts a new user row. The caller supplies the id, role id and
// address id; timestamps come back from the database.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, cpf, birth_date,
			phone, gender_id, education_id, code, role_id, address_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.CPF,
		user.BirthDate, user.Phone, user.GenderID, user.EducationID,
		user.Code, user.RoleID, user.AddressID, user.Status,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			field := uniqueViolationField(err)
			if field == "cpf" {
				return apperrors.AlreadyExists("user", "cpf", user.CPF)
			}
			return apperrors.AlreadyExists("user", "email", user.Email)
		}
		return apperrors.Wrap(err, "create user")
	}

	return nil
}

// GetByID retrieves a user and their role.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		JOIN roles r ON r.id = u.role_id
		WHERE u.id = $1`

	user, err := r.scanUser(ctx, query, id)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFound("user", id)
		}
		return nil, apperrors.Wrap(err, "get user by id")
	}
	return user, nil
}

// GetByEmail retrieves a user and their role by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		JOIN roles r ON r.id = u.role_id
		WHERE u.email = $1`

	user, err := r.scanUser(ctx, query, email)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFound("user", email)
		}
		return nil, apperrors.Wrap(err, "get user by email")
	}
	return user, nil
}

// GetByCPF retrieves a user and their role by national personal ID.
func (r *UserRepository) GetByCPF(ctx context.Context, cpf string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		JOIN roles r ON r.id = u.role_id
		WHERE u.cpf = $1`

	user, err := r.scanUser(ctx, query, cpf)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFound("user", cpf)
		}
		return nil, apperrors.Wrap(err, "get user by cpf")
	}
	return user, nil
}

func (r *UserRepository) scanUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	var (
		user domain.User
		role domain.Role
	)
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.CPF,
		&user.BirthDate, &user.Phone, &user.GenderID, &user.EducationID,
		&user.Code, &user.RoleID, &user.AddressID, &user.Status,
		&user.CreatedAt, &user.UpdatedAt,
		&role.ID, &role.Name, &role.Level, &role.Status,
	)
	if err != nil {
		return nil, err
	}
	user.Role = &role
	return &user, nil
}
