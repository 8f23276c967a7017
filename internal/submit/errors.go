package submit

import (
	"errors"

	"github.com/five82/aperture/internal/contracts"
	"github.com/five82/aperture/internal/studio"
)

// ValidationError is a local, field-scoped rejection.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func required(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// fromViolation maps a contract failure onto the form field it concerns.
func fromViolation(err error) error {
	var v *contracts.Violation
	if !errors.As(err, &v) {
		return err
	}
	return &ValidationError{Field: v.Field, Message: "Please check this field: " + v.Message}
}

func failureText(err error, fallback string) string {
	return studio.UserMessage(err, fallback)
}
