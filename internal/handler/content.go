package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/revolck-lab/api-advancemais-sub001/internal/service"
	"github.com/revolck-lab/api-advancemais-sub001/pkg/validator"
)

// ContentHandler serves CMS endpoints. Reads are public; writes are
// administrator-only via the router.
type ContentHandler struct {
	content *service.ContentService
	logger  *slog.Logger
}

// NewContentHandler creates a new content handler.
func NewContentHandler(content *service.ContentService, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{content: content, logger: logger}
}

type bannerRequest struct {
	Title    string `json:"title" validate:"required,min=2"`
	ImageURL string `json:"image_url" validate:"required,url"`
	LinkURL  string `json:"link_url" validate:"omitempty,url"`
	Position int    `json:"position" validate:"gte=0"`
	Active   bool   `json:"active"`
}

// ListBanners returns the active banners. Public.
func (h *ContentHandler) ListBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.content.ListActiveBanners(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, banners)
}

// CreateBanner adds a banner.
func (h *ContentHandler) CreateBanner(w http.ResponseWriter, r *http.Request) {
	var req bannerRequest
	if err := h.decode(w, r, &req); err != nil {
		return
	}

	banner, err := h.content.CreateBanner(r.Context(), bannerInput(req))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusCreated, banner)
}

// UpdateBanner modifies a banner.
func (h *ContentHandler) UpdateBanner(w http.ResponseWriter, r *http.Request) {
	var req bannerRequest
	if err := h.decode(w, r, &req); err != nil {
		return
	}

	banner, err := h.content.UpdateBanner(r.Context(), chi.URLParam(r, "id"), bannerInput(req))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, banner)
}

// DeleteBanner removes a banner.
func (h *ContentHandler) DeleteBanner(w http.ResponseWriter, r *http.Request) {
	if err := h.content.DeleteBanner(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ContentHandler) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	err := validator.DecodeAndValidate(r, dst)
	if err == nil {
		return nil
	}

	var validationErr *validator.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, r, h.logger, err)
	} else {
		writeBadRequest(w, "invalid request body")
	}
	return err
}

func bannerInput(req bannerRequest) service.BannerInput {
	return service.BannerInput{
		Title:    req.Title,
		ImageURL: req.ImageURL,
		LinkURL:  req.LinkURL,
		Position: req.Position,
		Active:   req.Active,
	}
}
