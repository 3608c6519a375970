// Package inventory holds the pure stock rules.
package inventory

import (
	"strings"

	"github.com/example/esys/internal/apperr"
	"github.com/example/esys/internal/core/guard"
)

// UpsertContext provides context for item insert/replace guards.
type UpsertContext struct {
	PartNo string
	Name   string
	Qty    int
	MinQty int
}

// CanUpsertItem evaluates whether an item record is acceptable.
func CanUpsertItem(ctx UpsertContext) guard.Result {
	if strings.TrimSpace(ctx.PartNo) == "" {
		return guard.Deny(apperr.KindValidation, "part number is required")
	}
	if strings.TrimSpace(ctx.Name) == "" {
		return guard.Deny(apperr.KindValidation, "part name is required")
	}
	if ctx.Qty < 0 {
		return guard.Deny(apperr.KindValidation, "quantity cannot be negative (got %d)", ctx.Qty)
	}
	if ctx.MinQty < 0 {
		return guard.Deny(apperr.KindValidation, "minimum quantity cannot be negative (got %d)", ctx.MinQty)
	}
	return guard.Allow()
}

// ApplyDelta returns qty+delta clamped at zero.
func ApplyDelta(qty, delta int) int {
	if n := qty + delta; n > 0 {
		return n
	}
	return 0
}

// IsLow reports whether an item is below its minimum. Equal is not low.
func IsLow(qty, minQty int) bool {
	return qty < minQty
}
