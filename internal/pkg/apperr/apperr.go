// Package apperr defines the typed errors shared by the feature packages.
//
// Every feature declares its sentinels with New; callers compare with
// errors.Is (matched by Code) and transports map the Kind to a status.
package apperr

import (
	"errors"
	"net/http"
)

// Kind groups errors by how a caller is expected to react.
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindValidation   Kind = "validation"
	KindUnavailable  Kind = "unavailable"
	KindConflict     Kind = "conflict"
	KindForbidden    Kind = "forbidden"
	KindState        Kind = "state"
	KindUnauthorized Kind = "unauthorized"
	KindInternal     Kind = "internal"
)

// Error is the domain error type.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Details map[string]string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target carries the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Wrap returns a copy of base that carries cause.
func Wrap(base *Error, cause error) *Error {
	return &Error{
		Kind:    base.Kind,
		Code:    base.Code,
		Message: base.Message,
		Details: base.Details,
		Cause:   cause,
	}
}

// WithDetails returns a copy of base with per-field details attached.
func WithDetails(base *Error, details map[string]string) *Error {
	return &Error{
		Kind:    base.Kind,
		Code:    base.Code,
		Message: base.Message,
		Details: details,
		Cause:   base.Cause,
	}
}

// KindOf returns the kind of the first *Error in the chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// HTTPStatus maps a kind to the status code used by the HTTP layer.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindUnavailable:
		return http.StatusUnprocessableEntity
	case KindConflict, KindState:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
