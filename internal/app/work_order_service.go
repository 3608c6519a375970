package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/example/esys/internal/apperr"
	corefleet "github.com/example/esys/internal/core/fleet"
	"github.com/example/esys/internal/core/guard"
	"github.com/example/esys/internal/core/roles"
	coreworkorder "github.com/example/esys/internal/core/workorder"
	"github.com/example/esys/internal/ctxutil"
	"github.com/example/esys/internal/ports/primary"
	"github.com/example/esys/internal/ports/secondary"
)

// WorkOrderServiceImpl implements the WorkOrderService interface.
type WorkOrderServiceImpl struct {
	taskRepo  secondary.TaskRepository
	userRepo  secondary.UserRepository
	fleetRepo secondary.FleetRepository
	audit     auditLog
	logger    *slog.Logger
}

// NewWorkOrderService creates a new WorkOrderService with injected dependencies.
// logWriter may be nil, in which case nothing is audited.
func NewWorkOrderService(
	taskRepo secondary.TaskRepository,
	userRepo secondary.UserRepository,
	fleetRepo secondary.FleetRepository,
	logWriter secondary.LogWriter,
	logger *slog.Logger,
) *WorkOrderServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkOrderServiceImpl{
		taskRepo:  taskRepo,
		userRepo:  userRepo,
		fleetRepo: fleetRepo,
		audit:     newAuditLog(logWriter, logger),
		logger:    logger,
	}
}

// CreateWorkOrder creates a new work order in the requested or selected context.
func (s *WorkOrderServiceImpl) CreateWorkOrder(ctx context.Context, req primary.CreateWorkOrderRequest) (*primary.CreateWorkOrderResponse, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}

	status := coreworkorder.InitialStatus()
	if req.Status != "" {
		status = coreworkorder.Status(req.Status)
	}

	assigneeExists := false
	if req.AssignedTo != "" {
		if assigneeExists, err = s.userRepo.Exists(ctx, req.AssignedTo); err != nil {
			return nil, fmt.Errorf("failed to look up assignee: %w", err)
		}
	}

	guardCtx := coreworkorder.CreateContext{
		ActorRole:      actor.Role,
		Title:          req.Title,
		Status:         status,
		Assignee:       req.AssignedTo,
		AssigneeExists: assigneeExists,
	}
	if result := coreworkorder.CanCreateWorkOrder(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	baseID, tail := req.BaseID, corefleet.NormalizeTail(req.AircraftTail)
	if baseID == "" {
		baseID = actor.BaseID
	}
	if tail == "" {
		tail = actor.Tail
	}
	if err := resolveContext(ctx, s.fleetRepo, baseID, tail); err != nil {
		return nil, err
	}

	record := &secondary.TaskRecord{
		Title:        strings.TrimSpace(req.Title),
		Details:      req.Details,
		AssignedTo:   req.AssignedTo,
		Status:       string(status),
		BaseID:       baseID,
		AircraftTail: tail,
	}
	if err := s.taskRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create work order: %w", err)
	}

	s.audit.created(ctx, secondary.EntityTask, strconv.Itoa(record.ID))
	s.logger.InfoContext(ctx, "work order created",
		slog.Int("id", record.ID),
		slog.String("base_id", baseID),
		slog.String("aircraft_tail", tail),
		slog.String("actor", actor.Username))

	return &primary.CreateWorkOrderResponse{
		ID:        record.ID,
		WorkOrder: recordToWorkOrder(record),
	}, nil
}

// GetWorkOrder retrieves a work order by id.
func (s *WorkOrderServiceImpl) GetWorkOrder(ctx context.Context, id int) (*primary.WorkOrder, error) {
	if _, err := requireActor(ctx); err != nil {
		return nil, err
	}
	record, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return recordToWorkOrder(record), nil
}

// ListWorkOrders lists work orders matching the filters. A given base/tail
// pair must be a valid context.
func (s *WorkOrderServiceImpl) ListWorkOrders(ctx context.Context, filters primary.WorkOrderFilters) ([]*primary.WorkOrder, error) {
	if _, err := requireActor(ctx); err != nil {
		return nil, err
	}

	tail := corefleet.NormalizeTail(filters.AircraftTail)
	if filters.BaseID != "" && tail != "" {
		if err := resolveContext(ctx, s.fleetRepo, filters.BaseID, tail); err != nil {
			return nil, err
		}
	}
	if filters.Status != "" {
		if _, ok := coreworkorder.ParseStatus(filters.Status); !ok {
			return nil, apperr.Validation("unknown status %q", filters.Status)
		}
	}

	return s.list(ctx, secondary.TaskFilters{
		BaseID:       filters.BaseID,
		AircraftTail: tail,
		AssignedTo:   filters.AssignedTo,
		Status:       filters.Status,
	})
}

// ListForView lists the work orders behind a role action in the actor's context.
// view_all_tasks shows everything only to roles that carry it; others see their own.
func (s *WorkOrderServiceImpl) ListForView(ctx context.Context, view string) ([]*primary.WorkOrder, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}

	filters := contextFilters(actor)
	switch view {
	case primary.ViewAll:
		if !roles.HasAction(actor.Role, roles.ActionViewAllTasks) {
			filters.AssignedTo = actor.Username
		}
	case primary.ViewRepairs:
		all, err := s.list(ctx, filters)
		if err != nil {
			return nil, err
		}
		repairs := make([]*primary.WorkOrder, 0, len(all))
		for _, wo := range all {
			if coreworkorder.IsRepairRequest(wo.Title) {
				repairs = append(repairs, wo)
			}
		}
		return repairs, nil
	case primary.ViewMine, "":
		filters.AssignedTo = actor.Username
	default:
		return nil, apperr.Validation("unknown view %q", view)
	}

	return s.list(ctx, filters)
}

// ListApprovalQueue lists completed and in_review work orders. Without a
// selected context every base is included.
func (s *WorkOrderServiceImpl) ListApprovalQueue(ctx context.Context) ([]*primary.WorkOrder, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}

	all, err := s.list(ctx, contextFilters(actor))
	if err != nil {
		return nil, err
	}
	queue := make([]*primary.WorkOrder, 0, len(all))
	for _, wo := range all {
		if coreworkorder.IsApprovable(coreworkorder.Status(wo.Status)) {
			queue = append(queue, wo)
		}
	}
	return queue, nil
}

// AssignWorkOrder assigns a user and moves the work order to in_progress.
func (s *WorkOrderServiceImpl) AssignWorkOrder(ctx context.Context, req primary.AssignWorkOrderRequest) (*primary.WorkOrder, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}

	record, err := s.taskRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	assigneeExists := false
	if req.Assignee != "" {
		if assigneeExists, err = s.userRepo.Exists(ctx, req.Assignee); err != nil {
			return nil, fmt.Errorf("failed to look up assignee: %w", err)
		}
	}

	guardCtx := coreworkorder.AssignContext{
		TaskID:         record.ID,
		Status:         coreworkorder.Status(record.Status),
		ActorRole:      actor.Role,
		Assignee:       req.Assignee,
		AssigneeExists: assigneeExists,
	}
	if result := coreworkorder.CanAssignWorkOrder(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	next, _ := coreworkorder.Next(guardCtx.Status, coreworkorder.ActionAssign)
	status := string(next)
	updated, err := s.taskRepo.Update(ctx, record.ID, secondary.TaskPatch{
		AssignedTo: &req.Assignee,
		Status:     &status,
	}, guardedVersion(req.ExpectedVersion, record))
	if err != nil {
		return nil, wrapUpdateErr(err, "assign work order")
	}

	id := strconv.Itoa(record.ID)
	s.audit.updated(ctx, secondary.EntityTask, id, "assigned_to", record.AssignedTo, updated.AssignedTo)
	s.audit.updated(ctx, secondary.EntityTask, id, "status", record.Status, updated.Status)

	return recordToWorkOrder(updated), nil
}

// CompleteWorkOrder marks an in_progress work order completed.
func (s *WorkOrderServiceImpl) CompleteWorkOrder(ctx context.Context, req primary.TransitionRequest) (*primary.WorkOrder, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}

	return s.transition(ctx, req, coreworkorder.ActionComplete, func(record *secondary.TaskRecord) guard.Result {
		return coreworkorder.CanCompleteWorkOrder(coreworkorder.CompleteContext{
			TaskID:        record.ID,
			Status:        coreworkorder.Status(record.Status),
			ActorUsername: actor.Username,
			ActorRole:     actor.Role,
			AssignedTo:    record.AssignedTo,
			TaskBaseID:    record.BaseID,
			TaskTail:      record.AircraftTail,
			ActorBaseID:   actor.BaseID,
			ActorTail:     actor.Tail,
		})
	})
}

// SubmitForReview moves a completed work order into review.
func (s *WorkOrderServiceImpl) SubmitForReview(ctx context.Context, req primary.TransitionRequest) (*primary.WorkOrder, error) {
	return s.decide(ctx, req, coreworkorder.ActionReview, coreworkorder.CanSubmitForReview)
}

// ApproveWorkOrder approves a completed or in_review work order.
func (s *WorkOrderServiceImpl) ApproveWorkOrder(ctx context.Context, req primary.TransitionRequest) (*primary.WorkOrder, error) {
	return s.decide(ctx, req, coreworkorder.ActionApprove, coreworkorder.CanApproveWorkOrder)
}

// RejectWorkOrder rejects a completed or in_review work order.
func (s *WorkOrderServiceImpl) RejectWorkOrder(ctx context.Context, req primary.TransitionRequest) (*primary.WorkOrder, error) {
	return s.decide(ctx, req, coreworkorder.ActionReject, coreworkorder.CanRejectWorkOrder)
}

// UpdateWorkOrder edits title and/or details.
func (s *WorkOrderServiceImpl) UpdateWorkOrder(ctx context.Context, req primary.UpdateWorkOrderRequest) (*primary.WorkOrder, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}

	record, err := s.taskRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	guardCtx := coreworkorder.EditContext{
		TaskID:    record.ID,
		Status:    coreworkorder.Status(record.Status),
		ActorRole: actor.Role,
		Title:     req.Title,
	}
	if result := coreworkorder.CanEditWorkOrder(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	patch := secondary.TaskPatch{Details: req.Details}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		patch.Title = &title
	}
	updated, err := s.taskRepo.Update(ctx, record.ID, patch, guardedVersion(req.ExpectedVersion, record))
	if err != nil {
		return nil, wrapUpdateErr(err, "update work order")
	}

	id := strconv.Itoa(record.ID)
	s.audit.updated(ctx, secondary.EntityTask, id, "title", record.Title, updated.Title)
	s.audit.updated(ctx, secondary.EntityTask, id, "details", record.Details, updated.Details)

	return recordToWorkOrder(updated), nil
}

func (s *WorkOrderServiceImpl) decide(
	ctx context.Context,
	req primary.TransitionRequest,
	action coreworkorder.Action,
	check func(coreworkorder.DecisionContext) guard.Result,
) (*primary.WorkOrder, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}

	return s.transition(ctx, req, action, func(record *secondary.TaskRecord) guard.Result {
		return check(coreworkorder.DecisionContext{
			TaskID:    record.ID,
			Status:    coreworkorder.Status(record.Status),
			ActorRole: actor.Role,
		})
	})
}

// transition loads the work order, runs check and applies the status change.
// A denied check leaves the stored work order untouched.
func (s *WorkOrderServiceImpl) transition(
	ctx context.Context,
	req primary.TransitionRequest,
	action coreworkorder.Action,
	check func(*secondary.TaskRecord) guard.Result,
) (*primary.WorkOrder, error) {
	record, err := s.taskRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if result := check(record); !result.Allowed {
		return nil, result.Error()
	}

	next, ok := coreworkorder.Next(coreworkorder.Status(record.Status), action)
	if !ok {
		return nil, apperr.Validation("cannot %s work order #%d in status %s", action, record.ID, record.Status)
	}
	status := string(next)
	updated, err := s.taskRepo.Update(ctx, record.ID, secondary.TaskPatch{Status: &status}, guardedVersion(req.ExpectedVersion, record))
	if err != nil {
		return nil, wrapUpdateErr(err, fmt.Sprintf("%s work order", action))
	}

	s.audit.updated(ctx, secondary.EntityTask, strconv.Itoa(record.ID), "status", record.Status, updated.Status)
	s.logger.InfoContext(ctx, "work order transitioned",
		slog.Int("id", record.ID),
		slog.String("action", string(action)),
		slog.String("from", record.Status),
		slog.String("to", updated.Status),
		slog.String("actor", ctxutil.ActorID(ctx)))

	return recordToWorkOrder(updated), nil
}

func (s *WorkOrderServiceImpl) list(ctx context.Context, filters secondary.TaskFilters) ([]*primary.WorkOrder, error) {
	records, err := s.taskRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list work orders: %w", err)
	}
	orders := make([]*primary.WorkOrder, len(records))
	for i, r := range records {
		orders[i] = recordToWorkOrder(r)
	}
	return orders, nil
}

// contextFilters narrows to the actor's selected base/aircraft, if any.
func contextFilters(actor ctxutil.Actor) secondary.TaskFilters {
	return secondary.TaskFilters{BaseID: actor.BaseID, AircraftTail: actor.Tail}
}

// guardedVersion pins a write to the version the guard was evaluated against,
// so a concurrent change between the read and the write is a conflict.
func guardedVersion(expected int, record *secondary.TaskRecord) int {
	if expected > 0 {
		return expected
	}
	return record.Version
}

// wrapUpdateErr keeps kinded repository errors as they are.
func wrapUpdateErr(err error, op string) error {
	if errors.Is(err, apperr.ErrNotFound) || errors.Is(err, apperr.ErrConflict) {
		return err
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func recordToWorkOrder(r *secondary.TaskRecord) *primary.WorkOrder {
	return &primary.WorkOrder{
		ID:           r.ID,
		Title:        r.Title,
		Details:      r.Details,
		AssignedTo:   r.AssignedTo,
		Status:       r.Status,
		BaseID:       r.BaseID,
		AircraftTail: r.AircraftTail,
		Version:      r.Version,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
