// Package shared contains common domain types, errors and events
// that are used across all domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")

	// Validation errors
	ErrValidation      = errors.New("validation error")
	ErrInvalidID       = errors.New("invalid ID")
	ErrInvalidInput    = errors.New("invalid input")
	ErrEmptyValue      = errors.New("value cannot be empty")
	ErrValueOutOfRange = errors.New("value out of range")

	// State errors
	ErrInvalidState = errors.New("invalid state")
	ErrExpired      = errors.New("expired")

	// Authorization errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Concurrency errors
	ErrOptimisticLock = errors.New("optimistic lock failure")

	// Infrastructure errors
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrTimeout            = errors.New("operation timeout")
	ErrRateLimited        = errors.New("rate limited")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "quiz", "progress", "session"
	Op      string // Operation that failed, e.g., "Complete", "Load"
	Kind    error  // Base error type for errors.Is() checking
	Field   string // Offending field for validation errors (optional)
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// NewFieldError creates a validation error that names the offending field.
func NewFieldError(domain, op, field, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    ErrValidation,
		Field:   field,
		Message: fmt.Sprintf("%s: %s", field, message),
	}
}

// Session domain errors
var (
	ErrSessionNotFound    = NewDomainError("session", "Find", ErrNotFound, "session not found")
	ErrSessionExpired     = NewDomainError("session", "Find", ErrExpired, "session expired")
	ErrInvalidToken       = NewDomainError("session", "Authenticate", ErrUnauthorized, "invalid session token")
	ErrSessionConflict    = NewDomainError("session", "Save", ErrOptimisticLock, "session was modified concurrently")
	ErrInvalidMode        = NewDomainError("session", "SetMode", ErrInvalidInput, "mode must be student or teacher")
	ErrQuizNotCompleted   = NewDomainError("session", "RequireQuiz", ErrInvalidState, "quiz has not been completed")
	ErrQuizAlreadyApplied = NewDomainError("session", "CompleteQuiz", ErrInvalidState, "quiz result was already applied")
)

// Catalog domain errors
var (
	ErrModuleNotFound      = NewDomainError("catalog", "FindModule", ErrNotFound, "module not found")
	ErrScenarioNotFound    = NewDomainError("catalog", "FindScenario", ErrNotFound, "scenario not found")
	ErrNotEligible         = NewDomainError("catalog", "CheckEligibility", ErrForbidden, "content is not available for this age group")
	ErrModuleHasNoQuiz     = NewDomainError("catalog", "CheckQuiz", ErrNotFound, "module has no quiz")
	ErrOptionOutOfRange    = NewDomainError("catalog", "Choose", ErrValueOutOfRange, "option index out of range")
	ErrInvalidCatalog      = NewDomainError("catalog", "Validate", ErrValidation, "catalog is invalid")
	ErrCatalogSourceFailed = NewDomainError("catalog", "Load", ErrServiceUnavailable, "catalog source unavailable")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEmptyValue) ||
		errors.Is(err, ErrValueOutOfRange)
}

// IsUnauthorized checks if the error is an authentication failure.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsForbidden checks if the error is an authorization failure.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsConflict checks if the error signals a state or concurrency conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrInvalidState) || errors.Is(err, ErrOptimisticLock)
}

// FieldOf returns the field named by a validation error, if any.
func FieldOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Field
	}
	return ""
}
