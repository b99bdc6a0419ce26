package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/revolck-lab/api-advancemais-sub001/internal/cache"
	"github.com/revolck-lab/api-advancemais-sub001/internal/domain"
	"github.com/revolck-lab/api-advancemais-sub001/internal/repository"
)

const (
	bannerCacheKey = "cms:banners:active"
	bannerCacheTTL = 60 * time.Second
)

// ContentService serves CMS content. The public banner listing sits behind a
// short-lived Redis cache; writes invalidate it.
type ContentService struct {
	banners repository.BannerRepository
	cache   *cache.Cache
	logger  *slog.Logger
}

// NewContentService creates a new content service.
func NewContentService(banners repository.BannerRepository, c *cache.Cache, logger *slog.Logger) *ContentService {
	return &ContentService{banners: banners, cache: c, logger: logger}
}

// BannerInput carries the fields for creating or updating a banner.
type BannerInput struct {
	Title    string
	ImageURL string
	LinkURL  string
	Position int
	Active   bool
}

// ListActiveBanners returns the active banners, serving from cache when warm.
func (s *ContentService) ListActiveBanners(ctx context.Context) ([]domain.Banner, error) {
	var cached []domain.Banner
	if err := s.cache.Get(ctx, bannerCacheKey, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		s.logger.WarnContext(ctx, "banner cache read failed", slog.String("error", err.Error()))
	}

	banners, err := s.banners.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, bannerCacheKey, banners, bannerCacheTTL); err != nil {
		s.logger.WarnContext(ctx, "banner cache write failed", slog.String("error", err.Error()))
	}
	return banners, nil
}

// CreateBanner adds a banner and invalidates the cache.
func (s *ContentService) CreateBanner(ctx context.Context, input BannerInput) (*domain.Banner, error) {
	banner := &domain.Banner{
		ID:       uuid.New().String(),
		Title:    input.Title,
		ImageURL: input.ImageURL,
		LinkURL:  input.LinkURL,
		Position: input.Position,
		Active:   input.Active,
	}
	if err := s.banners.Create(ctx, banner); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return banner, nil
}

// UpdateBanner modifies a banner and invalidates the cache.
func (s *ContentService) UpdateBanner(ctx context.Context, id string, input BannerInput) (*domain.Banner, error) {
	banner, err := s.banners.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	banner.Title = input.Title
	banner.ImageURL = input.ImageURL
	banner.LinkURL = input.LinkURL
	banner.Position = input.Position
	banner.Active = input.Active

	if err := s.banners.Update(ctx, banner); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return banner, nil
}

// DeleteBanner removes a banner and invalidates the cache.
func (s *ContentService) DeleteBanner(ctx context.Context, id string) error {
	if err := s.banners.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *ContentService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, bannerCacheKey); err != nil {
		s.logger.WarnContext(ctx, "banner cache invalidation failed", slog.String("error", err.Error()))
	}
}
