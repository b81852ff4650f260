package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/upmpoly/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeInvalidAmount       = "INVALID_AMOUNT"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeNotFound            = "NOT_FOUND"
	CodeAlreadyExists       = "ALREADY_EXISTS"
	CodeWrongAssetKind      = "WRONG_ASSET_KIND"
	CodeFacultyAlreadyOwned = "FACULTY_ALREADY_OWNED"
	CodeFacultyHasNoOwner   = "FACULTY_HAS_NO_OWNER"
	CodePlayerBroke         = "PLAYER_BROKE"
	CodePlayerEliminated    = "PLAYER_ELIMINATED"
	CodeCreditOverflow      = "CREDIT_OVERFLOW"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError. Domain errors carry the
// offending ids in their message, so it is passed through.
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrAssetNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeNotFound, err.Error()}}
	case errors.Is(err, model.ErrAssetAlreadyExists):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyExists, err.Error()}}
	case errors.Is(err, model.ErrWrongAssetKind):
		return &httpError{http.StatusConflict, APIError{CodeWrongAssetKind, err.Error()}}
	case errors.Is(err, model.ErrFacultyAlreadyOwned):
		return &httpError{http.StatusConflict, APIError{CodeFacultyAlreadyOwned, err.Error()}}
	case errors.Is(err, model.ErrFacultyHasNoOwner):
		return &httpError{http.StatusConflict, APIError{CodeFacultyHasNoOwner, err.Error()}}
	case errors.Is(err, model.ErrPlayerBroke):
		return &httpError{http.StatusPaymentRequired, APIError{CodePlayerBroke, err.Error()}}
	case errors.Is(err, model.ErrPlayerEliminated):
		return &httpError{http.StatusForbidden, APIError{CodePlayerEliminated, err.Error()}}
	case errors.Is(err, model.ErrCreditOverflow):
		return &httpError{http.StatusConflict, APIError{CodeCreditOverflow, err.Error()}}
	case errors.Is(err, model.ErrInvalidAmount):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidAmount, err.Error()}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Admin token required"}}
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError() error {
	return &httpError{http.StatusForbidden, APIError{CodeForbidden, "Admin token rejected"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
