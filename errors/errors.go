// Package errors provides error handling for rigforge.
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
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrUnknownComponentType) {
//	    // skip this subtree, keep walking
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
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Sentinel errors for the guide subsystem.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrUnknownComponentType indicates a node is tagged as a component but
	// its type does not resolve to a registered variant. Fatal for that
	// branch of the hierarchy only; discovery continues with siblings.
	ErrUnknownComponentType = New("unknown component type")

	// ErrInvalidSelection indicates an operation requiring a component or
	// model root was invoked on a node lacking the expected tag. The
	// operation aborts before mutating anything.
	ErrInvalidSelection = New("invalid selection")

	// ErrUnknownParam indicates a set against an unregistered parameter
	// name. Recoverable: guides feel out attribute sets and check this.
	ErrUnknownParam = New("unknown parameter")

	// ErrDuplicateParam indicates a parameter name was registered twice.
	ErrDuplicateParam = New("parameter already registered")

	// ErrMalformedTemplate indicates a guide template document that cannot
	// be decoded or is missing required sections. Fatal for the whole load.
	ErrMalformedTemplate = New("malformed guide template")

	// ErrStepFailed indicates a custom build step raised an error.
	ErrStepFailed = New("custom step failed")
)

// IsUnknownComponentType checks if an error is or wraps ErrUnknownComponentType.
func IsUnknownComponentType(err error) bool {
	return err != nil && Is(err, ErrUnknownComponentType)
}

// IsInvalidSelection checks if an error is or wraps ErrInvalidSelection.
func IsInvalidSelection(err error) bool {
	return err != nil && Is(err, ErrInvalidSelection)
}

// IsUnknownParam checks if an error is or wraps ErrUnknownParam.
func IsUnknownParam(err error) bool {
	return err != nil && Is(err, ErrUnknownParam)
}

// IsMalformedTemplate checks if an error is or wraps ErrMalformedTemplate.
func IsMalformedTemplate(err error) bool {
	return err != nil && Is(err, ErrMalformedTemplate)
}

// NewUnknownComponentType creates an unknown-component-type error naming the type.
func NewUnknownComponentType(compType string) error {
	return Wrap(ErrUnknownComponentType, compType)
}

// NewInvalidSelection creates an invalid-selection error with a formatted message.
func NewInvalidSelection(format string, args ...interface{}) error {
	return Wrap(ErrInvalidSelection, Newf(format, args...).Error())
}
