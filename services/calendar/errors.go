package calendar

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind is the closed set of provider failure classes. Executor branching
// matches over these kinds, never over message text.
type ErrorKind string

const (
	KindNotFound         ErrorKind = "not_found"
	KindPermissionDenied ErrorKind = "permission_denied"
	KindNotOrganizer     ErrorKind = "not_organizer"
	KindRateLimited      ErrorKind = "rate_limited"
	KindUnavailable      ErrorKind = "unavailable"
	KindInvalidInput     ErrorKind = "invalid_input"
)

// ProviderError wraps a provider-side failure with its structured kind.
type ProviderError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("calendar %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("calendar %s: %s", e.Op, e.Kind)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// KindOf extracts the structured kind from err, or "" when err is not a
// provider error.
func KindOf(err error) ErrorKind {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

// IsInfrastructure reports whether err is a transient/infrastructure-class
// failure (timeout, rate limiting, provider unreachable) as opposed to a
// policy or business outcome.
func IsInfrastructure(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	switch KindOf(err) {
	case KindRateLimited, KindUnavailable:
		return true
	}
	return false
}
