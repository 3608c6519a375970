// Package fleet decides whether an airbase/aircraft pair is a usable
// working context.
package fleet

import (
	"strings"

	"github.com/example/esys/internal/apperr"
	"github.com/example/esys/internal/core/guard"
)

// ContextCheck carries what the caller looked up about a base/tail pair.
type ContextCheck struct {
	BaseID     string
	BaseExists bool
	Tail       string
	TailExists bool
	TailBaseID string // base the aircraft belongs to, when TailExists
}

// CanUseContext evaluates whether an actor may select (base, tail).
// Rules:
// - Both base and tail are required
// - The base must exist
// - The aircraft must exist and belong to the base
func CanUseContext(c ContextCheck) guard.Result {
	if strings.TrimSpace(c.BaseID) == "" || strings.TrimSpace(c.Tail) == "" {
		return guard.Deny(apperr.KindValidation, "both base and aircraft tail are required")
	}

	if !c.BaseExists {
		return guard.Deny(apperr.KindNotFound, "airbase %s not found", c.BaseID)
	}

	if !c.TailExists {
		return guard.Deny(apperr.KindNotFound, "aircraft %s not found", c.Tail)
	}

	if c.TailBaseID != c.BaseID {
		return guard.Deny(apperr.KindValidation, "aircraft %s belongs to base %s, not %s", c.Tail, c.TailBaseID, c.BaseID)
	}

	return guard.Allow()
}

// NormalizeTail upper-cases and trims a tail number for lookups.
func NormalizeTail(tail string) string {
	return strings.ToUpper(strings.TrimSpace(tail))
}
