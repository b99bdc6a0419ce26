package postgres

import (
	"context"

	"github.com/revolck-lab/api-advancemais-sub001/internal/domain"
	apperrors "github.com/revolck-lab/api-advancemais-sub001/pkg/errors"
)

// AddressRepository is the PostgreSQL implementation of repository.AddressRepository.
type AddressRepository struct {
	db DB
}

// NewAddressRepository creates a new address repository.
func NewAddressRepository(db DB) *AddressRepository {
	return &AddressRepository{db: db}
}

// Create inserts a new address row.
func (r *AddressRepository) Create(ctx context.Context, address *domain.Address) error {
	query := `
		INSERT INTO addresses (id, address, city, state, cep, number)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := r.db.QueryRow(ctx, query,
		address.ID, address.Address, address.City, address.State,
		address.CEP, address.Number,
	).Scan(&address.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "create address")
	}
	return nil
}
