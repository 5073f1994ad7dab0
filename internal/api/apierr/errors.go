package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Remblej/Game-of-Space-and-Time/internal/model"
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
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeCellNotFound        = "CELL_NOT_FOUND"
	CodeConfigNotFound      = "CONFIG_NOT_FOUND"
	CodeIdentityExists      = "IDENTITY_EXISTS"
	CodeInvalidTickInterval = "INVALID_TICK_INTERVAL"
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

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrCellNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeCellNotFound, "Cell not found"}}
	case errors.Is(err, model.ErrConfigNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeConfigNotFound, "World config not found"}}
	case errors.Is(err, model.ErrIdentityExists):
		return &httpError{http.StatusConflict, APIError{CodeIdentityExists, "Identity already registered"}}
	case errors.Is(err, model.ErrInvalidTickInterval):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidTickInterval, "Tick interval must be positive"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// FromError maps an error to its wire representation without the HTTP
// status. Non-HTTP transports use this to shape their error payloads.
func FromError(err error) APIError {
	return toHTTPError(err).apiError
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewUnknownIdentityError rejects callers whose identity has no player
// record yet
func NewUnknownIdentityError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Unknown identity, connect first"}}
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError(message string) error {
	return &httpError{http.StatusForbidden, APIError{CodeForbidden, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
