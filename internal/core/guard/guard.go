// Package guard holds the result type shared by the pure guard functions in
// internal/core. Guards evaluate preconditions without side effects.
package guard

import (
	"fmt"

	"github.com/example/esys/internal/apperr"
)

// Result represents the outcome of a guard evaluation.
type Result struct {
	Allowed bool
	Reason  string
	Kind    apperr.Kind
}

// Allow returns a passing result.
func Allow() Result {
	return Result{Allowed: true}
}

// Deny returns a failing result of the given kind.
func Deny(kind apperr.Kind, format string, args ...any) Result {
	return Result{
		Allowed: false,
		Reason:  fmt.Sprintf(format, args...),
		Kind:    kind,
	}
}

// Error converts the result to an error if not allowed.
func (r Result) Error() error {
	if r.Allowed {
		return nil
	}
	return apperr.New(r.Kind, r.Reason)
}
