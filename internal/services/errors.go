package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Business errors recovered at the request boundary.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidCredential   = errors.New("incorrect password")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrDuplicateNationalID = errors.New("a patient with this national id already exists")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrClinicianNotFound   = errors.New("clinician not found")
)

// ValidationError collects per-field messages for malformed input so a
// presentation layer can re-render the form with them.
type ValidationError struct {
	Fields map[string]string
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

func (e *ValidationError) add(field, message string) {
	e.Fields[field] = message
}

func (e *ValidationError) hasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// isDuplicateKeyError detects a unique constraint violation from the driver,
// covering both Postgres and SQLite wording.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
