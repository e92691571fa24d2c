package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an aggregate id does not resolve.
	ErrNotFound = errors.New("resource not found")

	// ErrVersionConflict is returned when an optimistic-lock version check
	// fails on update. Distinct from ErrNotFound so callers can map it to
	// a conflict response instead of retrying blindly.
	ErrVersionConflict = errors.New("version conflict")
)

// RuleViolationError is a business-rule failure from the validation layer.
// It carries a human-readable reason; the first failing check short-circuits
// the whole operation.
type RuleViolationError struct {
	Reason string
}

func (e *RuleViolationError) Error() string {
	return e.Reason
}

// NewRuleViolation builds a RuleViolationError with a formatted reason.
func NewRuleViolation(format string, args ...any) error {
	return &RuleViolationError{Reason: fmt.Sprintf(format, args...)}
}

// IsRuleViolation reports whether err is a business-rule failure.
func IsRuleViolation(err error) bool {
	var rv *RuleViolationError
	return errors.As(err, &rv)
}

// NotFound wraps ErrNotFound with the resource kind and id that failed to resolve.
func NotFound(resource string, id any) error {
	return fmt.Errorf("%s %v: %w", resource, id, ErrNotFound)
}
