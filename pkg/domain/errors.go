package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	// ErrAuthenticationRequired is returned when an anonymous caller invokes a mutating operation
	ErrAuthenticationRequired = errors.New("authentication required")
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrConflict is returned when trying to create a resource that already exists
	ErrConflict = errors.New("resource already exists")
	// ErrExternalService is returned when an upstream data source fails
	ErrExternalService = errors.New("external service error")
	// ErrRatesNotLoaded is returned when a rate is requested before any rate was loaded
	ErrRatesNotLoaded = errors.New("exchange rates not loaded")
)

// Validationf wraps ErrValidation with a formatted detail message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFoundf wraps ErrNotFound with a formatted detail message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Conflictf wraps ErrConflict with a formatted detail message.
func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// ExternalServiceError carries the upstream status and message of a failed
// outbound call. It matches ErrExternalService with errors.Is.
type ExternalServiceError struct {
	Service string
	Status  int
	Message string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s returned status %d: %s", ErrExternalService, e.Service, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", ErrExternalService, e.Service, e.Message)
}

func (e *ExternalServiceError) Is(target error) bool {
	return target == ErrExternalService
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}
