// File: services/booking/errors.go
package booking

import "fmt"

// ValidationError reports the first form field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, msg string) error {
	return &ValidationError{
		Field:   field,
		Message: msg,
	}
}
