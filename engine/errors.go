package engine

import "errors"

// Engine errors. ErrInvalidPlaybook is fatal: the run never starts.
// ErrUpstreamUnavailable and ErrAnalysisInFlight are retryable; the
// engine performs no retries itself, retry policy belongs to the caller.
var (
	ErrInvalidPlaybook     = errors.New("invalid playbook")
	ErrUpstreamUnavailable = errors.New("clause retrieval unavailable")
	ErrAnalysisInFlight    = errors.New("analysis already in flight for document")
)

// Retryable reports whether the caller may retry the failed run.
func Retryable(err error) bool {
	return errors.Is(err, ErrUpstreamUnavailable) || errors.Is(err, ErrAnalysisInFlight)
}
