package application

import (
	"fmt"
	"strings"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// ValidateMaxDepth checks that a depth bound allows at least one level
func ValidateMaxDepth(fieldName string, depth int) error {
	if depth < 1 {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s must be at least 1, got %d", formatFieldName(fieldName), depth),
		}
	}
	return nil
}

// formatFieldName converts snake_case field names to space-separated words
// for more readable error messages (e.g., "root_category" -> "root category")
func formatFieldName(fieldName string) string {
	return strings.ReplaceAll(fieldName, "_", " ")
}
