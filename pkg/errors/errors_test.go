package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound, ErrAlreadyExists, ErrInvalidInput, ErrUnauthorized,
		ErrForbidden, ErrInternal, ErrConflict, ErrServiceUnavail,
	}

	for i := 0; i < len(sentinels); i++ {
		for j := i + 1; j < len(sentinels); j++ {
			assert.NotEqual(t, sentinels[i], sentinels[j],
				"sentinels %d and %d should be distinct", i, j)
		}
	}
}

func TestAppError_ErrorString_WithWrappedError(t *testing.T) {
	inner := fmt.Errorf("db connection lost")
	appErr := &AppError{Code: "INTERNAL_ERROR", Message: "something broke", Err: inner}
	assert.Contains(t, appErr.Error(), "INTERNAL_ERROR")
	assert.Contains(t, appErr.Error(), "something broke")
	assert.Contains(t, appErr.Error(), "db connection lost")
}

func TestAppError_ErrorString_WithoutWrappedError(t *testing.T) {
	appErr := &AppError{Code: "NOT_FOUND", Message: "user not found"}
	assert.Equal(t, "NOT_FOUND: user not found", appErr.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	appErr := NotFound("role", "42")
	assert.True(t, errors.Is(appErr, ErrNotFound))
}

func TestConstructors_StatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		status int
		code   string
	}{
		{"not found", NotFound("user", "u-1"), http.StatusNotFound, "NOT_FOUND"},
		{"already exists", AlreadyExists("user", "email", "a@b.com"), http.StatusConflict, "ALREADY_EXISTS"},
		{"invalid input", InvalidInput("bad"), http.StatusBadRequest, "INVALID_INPUT"},
		{"unauthorized", Unauthorized("invalid credentials"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", Forbidden("insufficient permissions"), http.StatusForbidden, "FORBIDDEN"},
		{"internal", Internal(fmt.Errorf("boom")), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

func TestInternal_DoesNotLeakCause(t *testing.T) {
	appErr := Internal(fmt.Errorf("password hash mismatch for user 42"))
	assert.Equal(t, "an internal error occurred", appErr.Message)
}

func TestHTTPStatus_AppError(t *testing.T) {
	err := Wrap(AlreadyExists("company", "cnpj", "12345678000199"), "register company")
	assert.Equal(t, http.StatusConflict, HTTPStatus(err))
}

func TestHTTPStatus_Sentinels(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(ErrNotFound))
	assert.Equal(t, http.StatusConflict, HTTPStatus(ErrConflict))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(ErrInvalidInput))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(ErrUnauthorized))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(ErrForbidden))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("unknown")))
}
