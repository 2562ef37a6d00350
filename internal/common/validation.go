package common

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError carries field-level messages keyed by the input field's
// JSON name. errors.Is(err, ErrorValidation) reports true for it.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%v: %s", ErrorValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrorValidation }
