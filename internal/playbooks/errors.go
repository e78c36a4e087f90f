package playbooks

import (
	"errors"
	"net/http"

	"github.com/parley-labs/parley/engine"
)

// Domain errors for playbook operations.
var (
	ErrNotFound  = errors.New("playbook not found")
	ErrDuplicate = errors.New("playbook name and version already exist")
	ErrNoDefault = errors.New("no default playbook configured")
)

// MapHTTPStatus maps playbook domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrNoDefault) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, engine.ErrInvalidPlaybook) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
