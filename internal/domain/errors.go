package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// First returns the first violated rule. Callers that surface a single
// message (the webhook response) use it.
func (e *ValidationError) First() FieldError {
	if len(e.Errors) == 0 {
		return FieldError{Field: "body", Message: "invalid"}
	}
	return e.Errors[0]
}

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// TransferConflictError reports that a lead was already sent to a pipeline
// for the same source stage. It unwraps to ErrConflict.
type TransferConflictError struct {
	LeadID       uuid.UUID
	PipelineID   uuid.UUID
	PipelineName string
}

func (e *TransferConflictError) Error() string {
	return fmt.Sprintf("lead %s already transferred to pipeline %q", e.LeadID, e.PipelineName)
}

func (e *TransferConflictError) Unwrap() error { return ErrConflict }
