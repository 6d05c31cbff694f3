package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrNoHistory     = errors.New("run history is disabled")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// QueryError records a failed source query for one category
type QueryError struct {
	Category string
	Op       string // "subcategories" or "file count"
	Err      error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s for %s: %v", e.Op, e.Category, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
