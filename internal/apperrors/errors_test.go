package apperrors_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/SscSPs/expense_approvals/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", apperrors.NewValidationError("bad"), http.StatusBadRequest},
		{"not found", apperrors.NewNotFoundError("gone"), http.StatusNotFound},
		{"forbidden", apperrors.NewForbiddenError("no"), http.StatusForbidden},
		{"conflict", apperrors.NewConflictError("moved"), http.StatusConflict},
		{"duplicate resource", apperrors.NewDuplicateError("exists"), http.StatusConflict},
		{"dependency", apperrors.NewDependencyError("down", errors.New("eof")), http.StatusServiceUnavailable},
		{"wrapped forbidden", fmt.Errorf("rule 1: %w", apperrors.NewForbiddenError("no")), http.StatusForbidden},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"context cancelled", context.Canceled, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperrors.StatusCode(tt.err))
		})
	}
}

func TestValidationWithCauseMatchesBoth(t *testing.T) {
	cause := apperrors.NewNotFoundError("expense e-1 not found")
	err := apperrors.NewValidationErrorWithCause("expense e-1 does not exist", cause)

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	// Validation wins over the not-found cause.
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusCode(err))
	assert.Equal(t, "expense e-1 does not exist: expense e-1 not found", err.Error())
}

func TestNewAppErrorDerivesKind(t *testing.T) {
	cause := errors.New("stale expense version")
	err := apperrors.NewAppError(http.StatusConflict, "retry the action", cause)

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.ErrorIs(t, err, cause)

	var appErr *apperrors.AppError
	assert.ErrorAs(t, fmt.Errorf("wrapped: %w", err), &appErr)
	assert.Equal(t, "retry the action", appErr.Message)
}

func TestDuplicateActionIsNotAConflict(t *testing.T) {
	err := apperrors.NewDuplicateActionError("already approved")

	assert.ErrorIs(t, err, apperrors.ErrDuplicateAction)
	assert.NotErrorIs(t, err, apperrors.ErrConflict)
	assert.NotErrorIs(t, err, apperrors.ErrDuplicate)
}
