// Package apperr defines the error kinds surfaced by esys services.
// Errors carry a human-readable reason and unwrap to one of the sentinels,
// so callers branch with errors.Is and adapters map kinds to exit codes or
// HTTP statuses.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for reporting.
type Kind string

const (
	KindNone             Kind = ""
	KindNotFound         Kind = "not_found"
	KindPermissionDenied Kind = "permission_denied"
	KindValidation       Kind = "validation"
	KindConflict         Kind = "conflict"
	KindInternal         Kind = "internal"
)

var (
	// ErrNotFound means a referenced id or key is absent.
	ErrNotFound = errors.New("not found")
	// ErrPermissionDenied means a capability check failed.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrValidation means the input was malformed or inconsistent.
	ErrValidation = errors.New("validation failed")
	// ErrConflict means the caller observed a stale version or a duplicate key.
	ErrConflict = errors.New("conflict")
)

type kindError struct {
	sentinel error
	msg      string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.sentinel }

// NotFound returns an error matching ErrNotFound.
func NotFound(format string, args ...any) error {
	return &kindError{sentinel: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

// PermissionDenied returns an error matching ErrPermissionDenied.
func PermissionDenied(format string, args ...any) error {
	return &kindError{sentinel: ErrPermissionDenied, msg: fmt.Sprintf(format, args...)}
}

// Validation returns an error matching ErrValidation.
func Validation(format string, args ...any) error {
	return &kindError{sentinel: ErrValidation, msg: fmt.Sprintf(format, args...)}
}

// Conflict returns an error matching ErrConflict.
func Conflict(format string, args ...any) error {
	return &kindError{sentinel: ErrConflict, msg: fmt.Sprintf(format, args...)}
}

// New returns an error of the given kind. KindNone and KindInternal yield a
// plain error.
func New(kind Kind, msg string) error {
	switch kind {
	case KindNotFound:
		return &kindError{sentinel: ErrNotFound, msg: msg}
	case KindPermissionDenied:
		return &kindError{sentinel: ErrPermissionDenied, msg: msg}
	case KindValidation:
		return &kindError{sentinel: ErrValidation, msg: msg}
	case KindConflict:
		return &kindError{sentinel: ErrConflict, msg: msg}
	default:
		return errors.New(msg)
	}
}

// KindOf reports the kind of err. Unclassified non-nil errors are internal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrPermissionDenied):
		return KindPermissionDenied
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrConflict):
		return KindConflict
	default:
		return KindInternal
	}
}
