// Package errors defines the failure taxonomy shared by every package in
// this module: invalid mining input, shape mismatches in distance
// computation, degenerate statistics, and cooperative cancellation.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks a dataset or parameter problem detected before
	// mining begins (empty dataset, unequal series lengths, out-of-range
	// window sizes).
	ErrInvalidInput = errors.New("invalid input")

	// ErrShapeMismatch marks a distance computation over sequences of
	// unequal length. Unlike ErrInvalidInput this indicates a programming
	// error: callers are expected to enforce equal length upstream.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrDegenerateStatistics marks a dataset whose marginals force every
	// contingency table to be untestable or to yield p = 1. It is not
	// fatal: mining.Mine reports it on the result rather than returning it.
	ErrDegenerateStatistics = errors.New("degenerate statistics")

	// ErrCancelled marks cooperative cancellation between candidates.
	// Like ErrDegenerateStatistics it is reported on the result, not
	// returned as an error, so that the partial result remains usable.
	ErrCancelled = errors.New("mining cancelled")
)

// InvalidInput wraps ErrInvalidInput with a caller-supplied reason.
func InvalidInput(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, reason)
}

// ShapeMismatch wraps ErrShapeMismatch with the offending lengths.
func ShapeMismatch(lenA, lenB int) error {
	return fmt.Errorf("%w: lengths %d and %d differ", ErrShapeMismatch, lenA, lenB)
}

// IsInvalidInput reports whether err is or wraps ErrInvalidInput.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsShapeMismatch reports whether err is or wraps ErrShapeMismatch.
func IsShapeMismatch(err error) bool {
	return errors.Is(err, ErrShapeMismatch)
}

// IsDegenerate reports whether a mining.Result's Diagnostic string marks
// the degenerate-statistics case. Diagnostic is a string rather than an
// error (it rides on a successful result, not a returned error), so this
// compares against ErrDegenerateStatistics.Error() rather than using
// errors.Is.
func IsDegenerate(diagnostic string) bool {
	return diagnostic == ErrDegenerateStatistics.Error()
}

// IsCancelled reports whether a mining.Result's Diagnostic string marks
// cooperative cancellation, for the same reason IsDegenerate compares
// strings rather than using errors.Is.
func IsCancelled(diagnostic string) bool {
	return diagnostic == ErrCancelled.Error()
}
