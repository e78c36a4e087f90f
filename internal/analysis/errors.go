package analysis

import (
	"errors"
	"net/http"

	"github.com/parley-labs/parley/engine"
	"github.com/parley-labs/parley/internal/playbooks"
)

// Domain errors for analysis operations.
var (
	ErrNotFound  = errors.New("analysis not found")
	ErrDuplicate = errors.New("analysis already exists")
)

// MapHTTPStatus maps analysis domain and engine errors to appropriate
// HTTP status codes. Retryable engine failures map to statuses clients
// treat as transient (409, 503); an invalid playbook is a permanent 422.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, playbooks.ErrNotFound),
		errors.Is(err, playbooks.ErrNoDefault):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate),
		errors.Is(err, engine.ErrAnalysisInFlight):
		return http.StatusConflict
	case errors.Is(err, engine.ErrInvalidPlaybook):
		return http.StatusUnprocessableEntity
	case errors.Is(err, engine.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
