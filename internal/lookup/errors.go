package lookup

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound reports that a route or stop token resolved to nothing.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput reports a missing, too short or malformed parameter.
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError carries per-field messages for an invalid request and
// matches ErrInvalidInput with errors.Is.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+strings.Join(e.Fields[name], ", "))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Invalid builds a ValidationError for a single field.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Fields: map[string][]string{field: {fmt.Sprintf(format, args...)}}}
}

func notFound(kind, token string) error {
	return fmt.Errorf("%s %q: %w", kind, token, ErrNotFound)
}
