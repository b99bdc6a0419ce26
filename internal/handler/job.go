package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/revolck-lab/api-advancemais-sub001/internal/service"
	"github.com/revolck-lab/api-advancemais-sub001/pkg/middleware"
	"github.com/revolck-lab/api-advancemais-sub001/pkg/validator"
)

// JobHandler serves job posting endpoints.
type JobHandler struct {
	jobs   *service.JobService
	logger *slog.Logger
}

// NewJobHandler creates a new job handler.
func NewJobHandler(jobs *service.JobService, logger *slog.Logger) *JobHandler {
	return &JobHandler{jobs: jobs, logger: logger}
}

type createJobRequest struct {
	Title       string `json:"title" validate:"required,min=3"`
	Description string `json:"description" validate:"required,min=10"`
	Area        string `json:"area"`
	City        string `json:"city"`
	State       string `json:"state" validate:"omitempty,len=2"`
}

// List returns all active postings. Public.
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobs.ListActiveJobs(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, jobs)
}

// Get returns a single posting. Public.
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobs.GetJob(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, job)
}

// Create publishes a posting for the authenticated company.
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

	var req createJobRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		var validationErr *validator.ValidationError
		if errors.As(err, &validationErr) {
			writeError(w, r, h.logger, err)
		} else {
			writeBadRequest(w, "invalid request body")
		}
		return
	}

	job, err := h.jobs.CreateJob(r.Context(), claims.CompanyID, service.CreateJobInput{
		Title:       req.Title,
		Description: req.Description,
		Area:        req.Area,
		City:        req.City,
		State:       req.State,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusCreated, job)
}

// ListMine returns the authenticated company's active postings.
func (h *JobHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

	jobs, err := h.jobs.ListCompanyJobs(r.Context(), claims.CompanyID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, jobs)
}

// Disable deactivates one of the authenticated company's postings.
func (h *JobHandler) Disable(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

	if err := h.jobs.DisableJob(r.Context(), claims.CompanyID, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
