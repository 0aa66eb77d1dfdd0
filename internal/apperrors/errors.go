package apperrors

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller is not entitled to perform the action.
var ErrForbidden = errors.New("not authorized")

// ErrConflict indicates a version mismatch or a write against a resource in a state that forbids it.
var ErrConflict = errors.New("conflict")

// ErrDependency indicates that an external collaborator (storage, rate source) failed.
var ErrDependency = errors.New("dependency failure")

// ErrDuplicateAction indicates that an approval action was already recorded for the expense.
var ErrDuplicateAction = errors.New("duplicate approval action")

// AppError carries an HTTP-ish status code, a message, the error kind (one of the
// sentinels above) and an optional cause. errors.Is matches both kind and cause.
type AppError struct {
	Code    int
	Message string
	Kind    error
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the kind and the cause to errors.Is / errors.As.
func (e *AppError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewAppError creates a generic application error. The kind is derived from the code.
func NewAppError(code int, message string, err error) *AppError {
	var kind error
	switch code {
	case http.StatusNotFound:
		kind = ErrNotFound
	case http.StatusBadRequest:
		kind = ErrValidation
	case http.StatusForbidden:
		kind = ErrForbidden
	case http.StatusConflict:
		kind = ErrConflict
	case http.StatusServiceUnavailable, http.StatusInternalServerError:
		kind = ErrDependency
	}
	return &AppError{Code: code, Message: message, Kind: kind, Err: err}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Kind: ErrNotFound}
}

func NewValidationError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Kind: ErrValidation}
}

// NewValidationErrorWithCause is used when the validation failure stems from another error,
// e.g. acting on an expense that does not exist.
func NewValidationErrorWithCause(message string, cause error) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Kind: ErrValidation, Err: cause}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: http.StatusForbidden, Message: message, Kind: ErrForbidden}
}

func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message, Kind: ErrConflict}
}

func NewDuplicateError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message, Kind: ErrDuplicate}
}

// NewDuplicateActionError reports an action that is already in the ledger. Callers treat it
// as a no-op success.
func NewDuplicateActionError(message string) *AppError {
	return &AppError{Code: http.StatusOK, Message: message, Kind: ErrDuplicateAction}
}

func NewDependencyError(message string, err error) *AppError {
	return &AppError{Code: http.StatusServiceUnavailable, Message: message, Kind: ErrDependency, Err: err}
}

// StatusCode maps any error to the HTTP status the handlers respond with.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict), errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrDependency):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
