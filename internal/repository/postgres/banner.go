package postgres

import (
	"context"

	"github.com/revolck-lab/api-advancemais-sub001/internal/domain"
	apperrors "github.com/revolck-lab/api-advancemais-sub001/pkg/errors"
)

// BannerRepository is the PostgreSQL implementation of repository.BannerRepository.
type BannerRepository struct {
	db DB
}

// NewBannerRepository creates a new banner repository.
func NewBannerRepository(db DB) *BannerRepository {
	return &BannerRepository{db: db}
}

// Create inserts a new banner.
func (r *BannerRepository) Create(ctx context.Context, banner *domain.Banner) error {
	query := `
		INSERT INTO banners (id, title, image_url, link_url, position, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		banner.ID, banner.Title, banner.ImageURL, banner.LinkURL,
		banner.Position, banner.Active,
	).Scan(&banner.CreatedAt, &banner.UpdatedAt)
	if err != nil {
		return apperrors.Wrap(err, "create banner")
	}
	return nil
}

// GetByID retrieves a banner.
func (r *BannerRepository) GetByID(ctx context.Context, id string) (*domain.Banner, error) {
	query := `
		SELECT id, title, image_url, link_url, position, active, created_at, updated_at
		FROM banners WHERE id = $1`

	var banner domain.Banner
	err := r.db.QueryRow(ctx, query, id).Scan(
		&banner.ID, &banner.Title, &banner.ImageURL, &banner.LinkURL,
		&banner.Position, &banner.Active, &banner.CreatedAt, &banner.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFound("banner", id)
		}
		return nil, apperrors.Wrap(err, "get banner by id")
	}
	return &banner, nil
}

// ListActive returns all active banners ordered by position.
func (r *BannerRepository) ListActive(ctx context.Context) ([]domain.Banner, error) {
	query := `
		SELECT id, title, image_url, link_url, position, active, created_at, updated_at
		FROM banners
		WHERE active = TRUE
		ORDER BY position ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "list banners")
	}
	defer rows.Close()

	var banners []domain.Banner
	for rows.Next() {
		var banner domain.Banner
		if err := rows.Scan(
			&banner.ID, &banner.Title, &banner.ImageURL, &banner.LinkURL,
			&banner.Position, &banner.Active, &banner.CreatedAt, &banner.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "scan banner")
		}
		banners = append(banners, banner)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "iterate banners")
	}
	return banners, nil
}

// Update modifies an existing banner.
func (r *BannerRepository) Update(ctx context.Context, banner *domain.Banner) error {
	query := `
		UPDATE banners
		SET title = $2, image_url = $3, link_url = $4, position = $5, active = $6,
			updated_at = NOW()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		banner.ID, banner.Title, banner.ImageURL, banner.LinkURL,
		banner.Position, banner.Active,
	)
	if err != nil {
		return apperrors.Wrap(err, "update banner")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("banner", banner.ID)
	}
	return nil
}

// Delete removes a banner.
func (r *BannerRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM banners WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "delete banner")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("banner", id)
	}
	return nil
}
