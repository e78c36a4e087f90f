package clauses

import (
	"errors"
	"net/http"
)

// Domain errors for clause operations.
var (
	ErrNotFound         = errors.New("clause not found")
	ErrDuplicate        = errors.New("clause already exists")
	ErrInvalidRiskLevel = errors.New("risk level must be low, medium, or high")
	ErrInvalidClause    = errors.New("invalid clause payload")
)

// MapHTTPStatus maps clause domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidRiskLevel) || errors.Is(err, ErrInvalidClause) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
