package postgres

import (
	"context"
	"strconv"

	"github.com/revolck-lab/api-advancemais-sub001/internal/domain"
	apperrors "github.com/revolck-lab/api-advancemais-sub001/pkg/errors"
)

// RoleRepository is the PostgreSQL implementation of repository.RoleRepository.
type RoleRepository struct {
	db DB
}

// NewRoleRepository creates a new role repository.
func NewRoleRepository(db DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// GetByName retrieves a role by its unique name.
func (r *RoleRepository) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	query := `SELECT id, name, level, status FROM roles WHERE name = $1`

	var role domain.Role
	err := r.db.QueryRow(ctx, query, name).Scan(&role.ID, &role.Name, &role.Level, &role.Status)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFound("role", name)
		}
		return nil, apperrors.Wrap(err, "get role by name")
	}
	return &role, nil
}

// GetByID retrieves a role by its identifier.
func (r *RoleRepository) GetByID(ctx context.Context, id int) (*domain.Role, error) {
	query := `SELECT id, name, level, status FROM roles WHERE id = $1`

	var role domain.Role
	err := r.db.QueryRow(ctx, query, id).Scan(&role.ID, &role.Name, &role.Level, &role.Status)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFound("role", strconv.Itoa(id))
		}
		return nil, apperrors.Wrap(err, "get role by id")
	}
	return &role, nil
}
