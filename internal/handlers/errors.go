package handlers

import (
	"errors"
	"net/http"

	"escape-portal/internal/service"
)

// statusFromError maps the service failure taxonomy onto HTTP status codes.
// Anything outside the taxonomy is an infrastructure failure.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUserLocked):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
