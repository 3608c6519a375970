// Package training holds the pure rules for training sessions and
// user assignments.
package training

import (
	"strings"
	"time"

	"github.com/example/esys/internal/apperr"
	"github.com/example/esys/internal/core/guard"
)

// Assignment statuses.
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
)

// DateLayout is the session date format.
const DateLayout = "2006-01-02"

// SessionContext provides context for session creation guards.
type SessionContext struct {
	Title string
	Date  string
}

// AssignContext provides context for assignment guards.
type AssignContext struct {
	User          string
	SessionID     int
	SessionExists bool
}

// StatusContext provides context for assignment status updates.
type StatusContext struct {
	User             string
	SessionID        int
	Status           string
	AssignmentExists bool
}

// CanAddSession evaluates whether a session can be created.
func CanAddSession(ctx SessionContext) guard.Result {
	if strings.TrimSpace(ctx.Title) == "" {
		return guard.Deny(apperr.KindValidation, "session title is required")
	}
	if _, err := time.Parse(DateLayout, ctx.Date); err != nil {
		return guard.Deny(apperr.KindValidation, "session date must be YYYY-MM-DD (got %q)", ctx.Date)
	}
	return guard.Allow()
}

// CanAssignUser evaluates whether a user can be put on a session.
// The user is not checked against the user registry.
func CanAssignUser(ctx AssignContext) guard.Result {
	if strings.TrimSpace(ctx.User) == "" {
		return guard.Deny(apperr.KindValidation, "user is required")
	}
	if !ctx.SessionExists {
		return guard.Deny(apperr.KindNotFound, "training session %d not found", ctx.SessionID)
	}
	return guard.Allow()
}

// CanSetStatus evaluates whether an assignment status update is acceptable.
func CanSetStatus(ctx StatusContext) guard.Result {
	if !IsValidStatus(ctx.Status) {
		return guard.Deny(apperr.KindValidation, "status must be %s or %s (got %q)", StatusScheduled, StatusCompleted, ctx.Status)
	}
	if !ctx.AssignmentExists {
		return guard.Deny(apperr.KindNotFound, "%s is not assigned to session %d", ctx.User, ctx.SessionID)
	}
	return guard.Allow()
}

// IsValidStatus reports whether s is a known assignment status.
func IsValidStatus(s string) bool {
	return s == StatusScheduled || s == StatusCompleted
}
