// Package primary defines the primary ports (driving side) of the application.
// Adapters such as the CLI and the HTTP API call these interfaces.
package primary

import "context"

// WorkOrderService defines the primary port for work order lifecycle operations.
// The acting user and their selected base/aircraft are read from ctx.
type WorkOrderService interface {
	// CreateWorkOrder creates a new work order.
	CreateWorkOrder(ctx context.Context, req CreateWorkOrderRequest) (*CreateWorkOrderResponse, error)

	// GetWorkOrder retrieves a work order by id.
	GetWorkOrder(ctx context.Context, id int) (*WorkOrder, error)

	// ListWorkOrders lists work orders matching the filters.
	ListWorkOrders(ctx context.Context, filters WorkOrderFilters) ([]*WorkOrder, error)

	// ListForView lists the work orders behind a role action in the actor's context.
	ListForView(ctx context.Context, view string) ([]*WorkOrder, error)

	// AssignWorkOrder assigns a user and moves the work order to in_progress.
	AssignWorkOrder(ctx context.Context, req AssignWorkOrderRequest) (*WorkOrder, error)

	// CompleteWorkOrder marks an in_progress work order completed.
	CompleteWorkOrder(ctx context.Context, req TransitionRequest) (*WorkOrder, error)

	// SubmitForReview moves a completed work order into review.
	SubmitForReview(ctx context.Context, req TransitionRequest) (*WorkOrder, error)

	// ApproveWorkOrder approves a completed or in_review work order.
	ApproveWorkOrder(ctx context.Context, req TransitionRequest) (*WorkOrder, error)

	// RejectWorkOrder rejects a completed or in_review work order.
	RejectWorkOrder(ctx context.Context, req TransitionRequest) (*WorkOrder, error)

	// UpdateWorkOrder edits title and/or details.
	UpdateWorkOrder(ctx context.Context, req UpdateWorkOrderRequest) (*WorkOrder, error)

	// ListApprovalQueue lists work orders awaiting a decision in the actor's context.
	ListApprovalQueue(ctx context.Context) ([]*WorkOrder, error)
}

// View names accepted by ListForView.
const (
	ViewAll     = "view_all_tasks"
	ViewMine    = "view_my_tasks"
	ViewRepairs = "repair_requests"
)

// CreateWorkOrderRequest contains parameters for creating a work order.
type CreateWorkOrderRequest struct {
	Title        string
	Details      string
	AssignedTo   string // Optional
	Status       string // Optional: pending (default) or in_progress
	BaseID       string // Optional: defaults to the actor's context
	AircraftTail string // Optional: defaults to the actor's context
}

// CreateWorkOrderResponse contains the result of creating a work order.
type CreateWorkOrderResponse struct {
	ID        int
	WorkOrder *WorkOrder
}

// AssignWorkOrderRequest contains parameters for assigning a work order.
type AssignWorkOrderRequest struct {
	ID              int
	Assignee        string
	ExpectedVersion int // Optional: 0 skips the version check
}

// TransitionRequest identifies a work order for a status transition.
type TransitionRequest struct {
	ID              int
	ExpectedVersion int // Optional: 0 skips the version check
}

// UpdateWorkOrderRequest contains parameters for editing a work order.
type UpdateWorkOrderRequest struct {
	ID              int
	Title           *string
	Details         *string
	ExpectedVersion int
}

// WorkOrderFilters contains filter options for listing work orders.
type WorkOrderFilters struct {
	BaseID       string
	AircraftTail string
	AssignedTo   string
	Status       string
}

// WorkOrder represents a work order entity at the port boundary.
type WorkOrder struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Details      string `json:"details"`
	AssignedTo   string `json:"assigned_to,omitempty"`
	Status       string `json:"status"`
	BaseID       string `json:"base_id"`
	AircraftTail string `json:"aircraft_tail"`
	Version      int    `json:"version"`
	CreatedAt    string `json:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}
