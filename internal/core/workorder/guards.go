package workorder

import (
	"strings"

	"github.com/example/esys/internal/apperr"
	"github.com/example/esys/internal/core/guard"
	"github.com/example/esys/internal/core/roles"
)

// CreateContext provides context for work order creation guards.
// The base/tail pair is resolved by the caller beforehand.
type CreateContext struct {
	ActorRole      string
	Title          string
	Status         Status
	Assignee       string // optional, empty if unassigned
	AssigneeExists bool   // only checked if Assignee != ""
}

// AssignContext provides context for assignment guards.
type AssignContext struct {
	TaskID         int
	Status         Status
	ActorRole      string
	Assignee       string
	AssigneeExists bool
}

// CompleteContext provides context for mark-complete guards.
type CompleteContext struct {
	TaskID        int
	Status        Status
	ActorUsername string
	ActorRole     string
	AssignedTo    string // empty if unassigned
	TaskBaseID    string
	TaskTail      string
	ActorBaseID   string
	ActorTail     string
}

// DecisionContext provides context for review, approve and reject guards.
type DecisionContext struct {
	TaskID    int
	Status    Status
	ActorRole string
}

// EditContext provides context for title/details edits.
type EditContext struct {
	TaskID    int
	Status    Status
	ActorRole string
	Title     *string
}

// CanCreateWorkOrder evaluates whether a work order can be created.
// Rules:
// - Actor role must carry can_create_task
// - Title is required
// - Initial status must be pending or in_progress
// - Assignee must exist (if provided)
func CanCreateWorkOrder(ctx CreateContext) guard.Result {
	if !roles.CapabilitiesFor(ctx.ActorRole).CanCreateTask {
		return guard.Deny(apperr.KindPermissionDenied, "role %s cannot create work orders", ctx.ActorRole)
	}

	if strings.TrimSpace(ctx.Title) == "" {
		return guard.Deny(apperr.KindValidation, "title is required")
	}

	if !IsInitialStatus(ctx.Status) {
		return guard.Deny(apperr.KindValidation, "initial status must be pending or in_progress (got %q)", ctx.Status)
	}

	if ctx.Assignee != "" && !ctx.AssigneeExists {
		return guard.Deny(apperr.KindNotFound, "user %s not found", ctx.Assignee)
	}

	return guard.Allow()
}

// CanAssignWorkOrder evaluates whether a work order can be (re)assigned.
// Rules:
// - Actor role must carry can_assign
// - Assignee is required and must exist
// - Work order must not be in a terminal status
func CanAssignWorkOrder(ctx AssignContext) guard.Result {
	if !roles.CapabilitiesFor(ctx.ActorRole).CanAssign {
		return guard.Deny(apperr.KindPermissionDenied, "role %s cannot assign work orders", ctx.ActorRole)
	}

	if strings.TrimSpace(ctx.Assignee) == "" {
		return guard.Deny(apperr.KindValidation, "assignee is required")
	}

	if _, ok := Next(ctx.Status, ActionAssign); !ok {
		return guard.Deny(apperr.KindValidation, "cannot assign work order #%d in status %s", ctx.TaskID, ctx.Status)
	}

	if !ctx.AssigneeExists {
		return guard.Deny(apperr.KindNotFound, "user %s not found", ctx.Assignee)
	}

	return guard.Allow()
}

// CanCompleteWorkOrder evaluates whether the actor can mark a work order completed.
// Rules:
// - Actor role must carry can_mark_complete
// - Work order base/tail must match the actor's selected context
// - Work order must be unassigned or assigned to the actor
// - Status must be in_progress
func CanCompleteWorkOrder(ctx CompleteContext) guard.Result {
	if !roles.CapabilitiesFor(ctx.ActorRole).CanMarkComplete {
		return guard.Deny(apperr.KindPermissionDenied, "role %s cannot mark work orders complete", ctx.ActorRole)
	}

	if ctx.TaskBaseID != ctx.ActorBaseID || ctx.TaskTail != ctx.ActorTail {
		return guard.Deny(apperr.KindValidation,
			"work order #%d is not in the selected base/aircraft (task %s/%s, selected %s/%s)",
			ctx.TaskID, ctx.TaskBaseID, ctx.TaskTail, orDash(ctx.ActorBaseID), orDash(ctx.ActorTail))
	}

	if ctx.AssignedTo != "" && ctx.AssignedTo != ctx.ActorUsername {
		return guard.Deny(apperr.KindPermissionDenied,
			"cannot complete work order #%d assigned to %s", ctx.TaskID, ctx.AssignedTo)
	}

	if _, ok := Next(ctx.Status, ActionComplete); !ok {
		return guard.Deny(apperr.KindValidation,
			"can only complete in_progress work orders (current status: %s)", ctx.Status)
	}

	return guard.Allow()
}

// CanSubmitForReview evaluates whether a completed work order can move to review.
func CanSubmitForReview(ctx DecisionContext) guard.Result {
	if !roles.CanReview(ctx.ActorRole) {
		return guard.Deny(apperr.KindPermissionDenied, "role %s cannot review work orders", ctx.ActorRole)
	}

	if _, ok := Next(ctx.Status, ActionReview); !ok {
		return guard.Deny(apperr.KindValidation,
			"can only review completed work orders (current status: %s)", ctx.Status)
	}

	return guard.Allow()
}

// CanApproveWorkOrder evaluates whether the actor can approve a work order.
// Rules:
// - Actor role must carry an approval action
// - Status must be completed or in_review
func CanApproveWorkOrder(ctx DecisionContext) guard.Result {
	return canDecide(ctx, ActionApprove)
}

// CanRejectWorkOrder evaluates whether the actor can reject a work order.
// Same rules as approval.
func CanRejectWorkOrder(ctx DecisionContext) guard.Result {
	return canDecide(ctx, ActionReject)
}

func canDecide(ctx DecisionContext, action Action) guard.Result {
	if !roles.CanApprove(ctx.ActorRole) {
		return guard.Deny(apperr.KindPermissionDenied, "role %s cannot %s work orders", ctx.ActorRole, action)
	}

	if _, ok := Next(ctx.Status, action); !ok {
		return guard.Deny(apperr.KindValidation,
			"can only %s %s work orders (current status: %s)", action, joinStatuses(SourceStatuses(action)), ctx.Status)
	}

	return guard.Allow()
}

// CanEditWorkOrder evaluates whether title/details may be edited.
// Rules:
// - Actor role must carry can_create_task
// - Work order must not be terminal
// - Title, when provided, must not be blank
func CanEditWorkOrder(ctx EditContext) guard.Result {
	if !roles.CapabilitiesFor(ctx.ActorRole).CanCreateTask {
		return guard.Deny(apperr.KindPermissionDenied, "role %s cannot edit work orders", ctx.ActorRole)
	}

	if IsTerminal(ctx.Status) {
		return guard.Deny(apperr.KindValidation, "work order #%d is %s and can no longer be edited", ctx.TaskID, ctx.Status)
	}

	if ctx.Title != nil && strings.TrimSpace(*ctx.Title) == "" {
		return guard.Deny(apperr.KindValidation, "title cannot be blank")
	}

	return guard.Allow()
}

// IsRepairRequest reports whether a work order title marks it as a repair request.
func IsRepairRequest(title string) bool {
	return strings.Contains(strings.ToLower(title), "repair")
}

func joinStatuses(statuses []Status) string {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	return strings.Join(names, " or ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
