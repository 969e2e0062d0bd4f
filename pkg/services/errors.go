// Package services orchestrates the comparison and risk-assessment engine
// behind validated request/response contracts and standardized error types.
package services

import (
	"errors"
	"fmt"

	"github.com/flowvault/flowvault/pkg/versionstore"
)

// Business logic errors. These indicate client errors (4xx responses); the
// engine itself never fails on malformed-but-present documents.
var (
	// Validation errors (400 Bad Request).
	ErrInvalidRequest       = errors.New("invalid request")
	ErrWorkflowIDRequired   = errors.New("workflow ID is required")
	ErrVersionPairRequired  = errors.New("both version references are required")
	ErrSameVersionReference = errors.New("version references must differ")

	// ErrDocumentMissing is returned when no document could be obtained for
	// an assessment: the one case where absence of input makes computation
	// meaningless (404 Not Found).
	ErrDocumentMissing = errors.New("workflow document missing")

	// ErrVersionNotFound mirrors the store sentinel for callers that only
	// import services.
	ErrVersionNotFound = versionstore.ErrVersionNotFound
)

// ServiceError wraps service-level errors with operation context.
type ServiceError struct {
	Op      string // Operation name
	Code    string // Error code for API responses
	Message string // Human-readable message
	Err     error  // Underlying error
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func (e *ServiceError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// IsValidationError checks whether an error should map to HTTP 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrWorkflowIDRequired) ||
		errors.Is(err, ErrVersionPairRequired) ||
		errors.Is(err, ErrSameVersionReference)
}

// IsNotFoundError checks whether an error should map to HTTP 404.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrVersionNotFound) || errors.Is(err, ErrDocumentMissing)
}
