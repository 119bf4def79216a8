// Package errors defines the domain error type shared by services and the HTTP layer.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies a DomainError; the HTTP layer maps it to a status code.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindUnauthorized
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// DomainError carries a stable code and a human-readable message.
type DomainError struct {
	Kind    Kind
	Code    string
	Message string
	Fields  map[string]string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches on Code so copies made by WithMessage or Wrap still match their sentinel.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// WithMessage returns a copy with a different message.
func (e *DomainError) WithMessage(msg string) *DomainError {
	cp := *e
	cp.Message = msg
	return &cp
}

// WithFields returns a copy carrying per-field messages.
func (e *DomainError) WithFields(fields map[string]string) *DomainError {
	cp := *e
	cp.Fields = fields
	return &cp
}

// Wrap returns a copy that records the underlying cause.
func (e *DomainError) Wrap(err error) *DomainError {
	cp := *e
	cp.Err = err
	return &cp
}

// Validation builds a validation error from a field map.
func Validation(msg string, fields map[string]string) *DomainError {
	return ErrValidation.WithMessage(msg).WithFields(fields)
}

// Internal wraps an unexpected failure.
func Internal(err error) *DomainError {
	return ErrInternal.Wrap(err)
}

// As extracts the DomainError from err's chain.
func As(err error) (*DomainError, bool) {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// KindOf returns the kind of err, KindInternal when it is not a DomainError.
func KindOf(err error) Kind {
	if de, ok := As(err); ok {
		return de.Kind
	}
	return KindInternal
}

var (
	ErrInternal = &DomainError{
		Kind:    KindInternal,
		Code:    "INTERNAL_ERROR",
		Message: "internal server error",
	}
	ErrValidation = &DomainError{
		Kind:    KindValidation,
		Code:    "VALIDATION_FAILED",
		Message: "validation failed",
	}
	ErrInvalidBody = &DomainError{
		Kind:    KindValidation,
		Code:    "INVALID_BODY",
		Message: "Invalid request body",
	}
	ErrNotFound = &DomainError{
		Kind:    KindNotFound,
		Code:    "NOT_FOUND",
		Message: "resource not found",
	}
	ErrConflict = &DomainError{
		Kind:    KindConflict,
		Code:    "CONFLICT",
		Message: "resource already exists",
	}
)
