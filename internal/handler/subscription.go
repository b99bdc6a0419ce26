package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/revolck-lab/api-advancemais-sub001/internal/service"
	"github.com/revolck-lab/api-advancemais-sub001/pkg/middleware"
	"github.com/revolck-lab/api-advancemais-sub001/pkg/validator"
)

// SubscriptionHandler serves plan and subscription endpoints.
type SubscriptionHandler struct {
	subs   *service.SubscriptionService
	logger *slog.Logger
}

// NewSubscriptionHandler creates a new subscription handler.
func NewSubscriptionHandler(subs *service.SubscriptionService, logger *slog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{subs: subs, logger: logger}
}

type subscribeRequest struct {
	PlanID int `json:"plan_id" validate:"required,gte=1"`
}

type changePlanResponse struct {
	Subscription any `json:"subscription"`
	DisabledJobs int `json:"disabled_jobs"`
}

// ListPlans returns the available plans. Public.
func (h *SubscriptionHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.subs.ListPlans(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, plans)
}

// Get returns the authenticated company's subscription.
func (h *SubscriptionHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

	sub, err := h.subs.GetSubscription(r.Context(), claims.CompanyID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, sub)
}

// Subscribe creates the company's first subscription.
func (h *SubscriptionHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

	var req subscribeRequest
	if err := h.decode(w, r, &req); err != nil {
		return
	}

	sub, err := h.subs.Subscribe(r.Context(), claims.CompanyID, req.PlanID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusCreated, sub)
}

// ChangePlan moves the company to a different plan.
func (h *SubscriptionHandler) ChangePlan(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

	var req subscribeRequest
	if err := h.decode(w, r, &req); err != nil {
		return
	}

	sub, disabled, err := h.subs.ChangePlan(r.Context(), claims.CompanyID, req.PlanID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, changePlanResponse{Subscription: sub, DisabledJobs: disabled})
}

func (h *SubscriptionHandler) decode(w http.ResponseWriter, r *http.Request, dst any) error {
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
