package schedule

import (
	"errors"
	"fmt"
)

// ValidationError reports a missing or malformed execution payload field.
// It is always raised before any external call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid payload: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid payload: missing %s", e.Field)
}

// IsValidation reports whether err is a payload validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
