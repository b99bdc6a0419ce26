package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/revolck-lab/api-advancemais-sub001/pkg/errors"
	"github.com/revolck-lab/api-advancemais-sub001/pkg/validator"
)

// response is the JSON envelope every endpoint writes: successes carry the
// payload under "data", failures carry "error". Exactly one side is set.
type response struct {
	Data  any        `json:"data,omitempty"`
	Error *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeData wraps a success payload in the response envelope.
func writeData(w http.ResponseWriter, status int, v any) {
	writeJSON(w, status, response{Data: v})
}

// writeError maps application errors to HTTP responses. Validation errors
// carry the per-field message lists; AppErrors carry their code and message;
// everything else collapses to an opaque 500.
func writeError(w http.ResponseWriter, r *http.Request, l *slog.Logger, err error) {
	var validationErr *validator.ValidationError
	if errors.As(err, &validationErr) {
		writeJSON(w, http.StatusBadRequest, response{Error: &errorBody{
			Code:    "VALIDATION_ERROR",
			Message: "request validation failed",
			Fields:  validationErr.Fields(),
		}})
		return
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Status >= http.StatusInternalServerError {
			l.ErrorContext(r.Context(), "request failed",
				slog.String("path", r.URL.Path),
				slog.String("error", appErr.Error()),
			)
		}
		writeJSON(w, appErr.Status, response{Error: &errorBody{Code: appErr.Code, Message: appErr.Message}})
		return
	}

	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		l.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeJSON(w, status, response{Error: &errorBody{Code: "INTERNAL_ERROR", Message: "an internal error occurred"}})
		return
	}
	writeJSON(w, status, response{Error: &errorBody{Code: http.StatusText(status), Message: err.Error()}})
}

// writeBadRequest reports a malformed (undecodable) body.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, response{Error: &errorBody{Code: "INVALID_INPUT", Message: message}})
}
