package repository

import "fmt"

// ValidationError rejects a write before it reaches storage. Field names the
// offending attribute so the presentation layer can surface it next to the
// input that caused it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalidf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
