package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for the post-generation domain. Every failure surfaced to the
// UI wraps exactly one of these so handlers can map it to a status code.
var (
	// ErrFetch indicates that article retrieval or extraction failed.
	ErrFetch = errors.New("article fetch failed")

	// ErrGeneration indicates that an external AI call failed or returned
	// an unusable response.
	ErrGeneration = errors.New("content generation failed")

	// ErrImage indicates that image compositing failed.
	ErrImage = errors.New("image processing failed")

	// ErrConfig indicates invalid or missing configuration. It is only
	// returned during startup and is fatal.
	ErrConfig = errors.New("invalid configuration")

	// ErrInvalidInput indicates that the provided input is invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStepNotReady indicates that a workflow step was triggered before
	// its prerequisites exist in the session.
	ErrStepNotReady = errors.New("workflow step not ready")
)

// ValidationError represents a validation error with field information.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Is makes ValidationError match ErrInvalidInput in errors.Is chains.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
