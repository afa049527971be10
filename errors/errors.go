// Package errors provides error handling for mamdani.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints and details
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := store.Fuzzify(i, x); err != nil {
//	    return errors.Wrapf(err, "fuzzify attribute %d", i)
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "declare the attribute before using it in a rule")
//
//	// Check errors
//	if errors.Is(err, errors.ErrUnknownAttribute) {
//	    // handle unknown attribute
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// GetStack returns the reportable stack trace attached to err, if any.
var GetStack = crdb.GetReportableStackTrace

// Assertions. A failed assertion means two structures that must agree
// (membership layout and compiled tokens) were built from different
// definitions; callers propagate these and never retry.
var (
	AssertionFailedf     = crdb.AssertionFailedf
	WithAssertionFailure = crdb.WithAssertionFailure
	HasAssertionFailure  = crdb.HasAssertionFailure
)

// Sentinel errors. Wrap these with errors.Wrap() to add context while
// preserving the type for errors.Is().
var (
	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = New("not found")

	// ErrInvalidRequest indicates the request was malformed or invalid
	ErrInvalidRequest = New("invalid request")

	// ErrUnknownAttribute indicates a rule names an attribute that was never declared
	ErrUnknownAttribute = New("unknown attribute")

	// ErrUnknownSet indicates a rule names a fuzzy set its attribute does not have
	ErrUnknownSet = New("unknown fuzzy set")

	// ErrMalformedRule indicates rule text (or a token stream) violates the rule grammar
	ErrMalformedRule = New("malformed rule")

	// ErrIndexOutOfRange indicates a compiled token points outside the membership layout
	ErrIndexOutOfRange = New("index out of range")

	// ErrDegenerateShape indicates a triangle with lo == mid == hi or unordered breakpoints
	ErrDegenerateShape = New("degenerate membership shape")

	// ErrInvalidInput indicates a crisp input vector does not match the antecedent attributes
	ErrInvalidInput = New("invalid input")
)

// IsNotFoundError checks if an error is or wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsInvalidRequestError checks if an error is or wraps ErrInvalidRequest
func IsInvalidRequestError(err error) bool {
	return err != nil && Is(err, ErrInvalidRequest)
}

// IsCompilationError reports whether err was produced while compiling rule text.
func IsCompilationError(err error) bool {
	return err != nil && IsAny(err, ErrUnknownAttribute, ErrUnknownSet, ErrMalformedRule)
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Wrap(ErrNotFound, Newf(format, args...).Error())
}

// NewInvalidRequestError creates an invalid-request error with a formatted message
func NewInvalidRequestError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidRequest, Newf(format, args...).Error())
}

// NewIndexError reports a compiled token that does not fit the membership layout.
// The result is an assertion failure: it must be propagated, never recovered.
func NewIndexError(format string, args ...interface{}) error {
	return WithAssertionFailure(Wrapf(ErrIndexOutOfRange, format, args...))
}
