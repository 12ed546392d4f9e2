// Package calerr defines the error taxonomy shared by the calendar packages.
//
// Every failure produced by the calendar core wraps exactly one of the sentinel
// errors below, so callers can branch with errors.Is:
//
//	if errors.Is(err, calerr.ErrRange) { ... }
//
// None of these errors are retryable: they are deterministic functions of the inputs.
package calerr

import (
	"errors"
	"fmt"
)

var (
	// ErrPrecondition marks invalid arguments: an empty week mask, a non-positive
	// tick multiple, an unsorted holiday list, a roll that is asked to raise.
	ErrPrecondition = errors.New("precondition violation")

	// ErrRange marks values that fall outside what can be represented: ordinals
	// outside 0001-01-01..9999-12-31, TimeDelta day overflow, nanosecond overflow.
	ErrRange = errors.New("out of range")

	// ErrSemantic marks misuse of otherwise valid values, such as mixing naive and
	// timezone-aware datetimes.
	ErrSemantic = errors.New("invalid operation")

	// ErrNotImplemented marks functionality that exists in the API but is not built yet.
	ErrNotImplemented = errors.New("not implemented")
)

// Precondition wraps ErrPrecondition with a formatted message.
func Precondition(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrPrecondition, fmt.Sprintf(format, args...))
}

// Range wraps ErrRange with a formatted message.
func Range(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrRange, fmt.Sprintf(format, args...))
}

// Semantic wraps ErrSemantic with a formatted message.
func Semantic(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSemantic, fmt.Sprintf(format, args...))
}

// NotImplemented wraps ErrNotImplemented naming the missing operation.
func NotImplemented(op string) error {
	return fmt.Errorf("%w: %s", ErrNotImplemented, op)
}

// Kind returns a short label for the taxonomy bucket err belongs to, or "internal"
// when err does not wrap any of the sentinels.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrPrecondition):
		return "precondition"
	case errors.Is(err, ErrRange):
		return "range"
	case errors.Is(err, ErrSemantic):
		return "semantic"
	case errors.Is(err, ErrNotImplemented):
		return "not_implemented"
	default:
		return "internal"
	}
}
