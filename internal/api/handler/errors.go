package handler

import (
	"net/http"

	"github.com/Remblej/Game-of-Space-and-Time/internal/api/apierr"
)

// Error helpers shared by the handlers in this package. The mapping from
// domain errors to status codes lives in apierr; handlers add only the
// request level failures they detect themselves.

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return apierr.NewUnauthorizedError()
}
