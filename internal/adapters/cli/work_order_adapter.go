package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/esys/internal/ports/primary"
)

// WorkOrderAdapter is a thin adapter that translates CLI operations to WorkOrderService calls.
type WorkOrderAdapter struct {
	service primary.WorkOrderService
	out     io.Writer
}

// NewWorkOrderAdapter creates a new WorkOrderAdapter with the given service.
func NewWorkOrderAdapter(service primary.WorkOrderService, out io.Writer) *WorkOrderAdapter {
	return &WorkOrderAdapter{
		service: service,
		out:     out,
	}
}

// Create creates a new work order.
func (a *WorkOrderAdapter) Create(ctx context.Context, req primary.CreateWorkOrderRequest) error {
	resp, err := a.service.CreateWorkOrder(ctx, req)
	if err != nil {
		return err
	}

	success(a.out, "Created work order #%d: %s (%s/%s)", resp.ID, resp.WorkOrder.Title,
		resp.WorkOrder.BaseID, resp.WorkOrder.AircraftTail)
	return nil
}

// List lists work orders matching the filters.
func (a *WorkOrderAdapter) List(ctx context.Context, filters primary.WorkOrderFilters) error {
	orders, err := a.service.ListWorkOrders(ctx, filters)
	if err != nil {
		return err
	}
	a.printTable(orders)
	return nil
}

// View lists the work orders behind a role action.
func (a *WorkOrderAdapter) View(ctx context.Context, view string) error {
	orders, err := a.service.ListForView(ctx, view)
	if err != nil {
		return err
	}
	a.printTable(orders)
	return nil
}

// Queue lists work orders awaiting approval.
func (a *WorkOrderAdapter) Queue(ctx context.Context) error {
	orders, err := a.service.ListApprovalQueue(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Fprintln(a.out, "No work orders awaiting approval")
		return nil
	}
	a.printTable(orders)
	return nil
}

// Show displays details for a single work order.
func (a *WorkOrderAdapter) Show(ctx context.Context, id int) (*primary.WorkOrder, error) {
	wo, err := a.service.GetWorkOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "\nWork order #%d (v%d)\n", wo.ID, wo.Version)
	fmt.Fprintf(a.out, "Title:    %s\n", wo.Title)
	fmt.Fprintf(a.out, "Status:   %s\n", colorStatus(wo.Status, 0))
	fmt.Fprintf(a.out, "Assignee: %s\n", orNone(wo.AssignedTo))
	fmt.Fprintf(a.out, "Aircraft: %s @ %s\n", wo.AircraftTail, wo.BaseID)
	if wo.Details != "" {
		fmt.Fprintf(a.out, "Details:  %s\n", wo.Details)
	}
	if wo.CreatedAt != "" {
		fmt.Fprintf(a.out, "Created:  %s\n", wo.CreatedAt)
	}
	if wo.UpdatedAt != "" && wo.UpdatedAt != wo.CreatedAt {
		fmt.Fprintf(a.out, "Updated:  %s\n", wo.UpdatedAt)
	}
	fmt.Fprintln(a.out)

	return wo, nil
}

// Assign assigns a user to a work order.
func (a *WorkOrderAdapter) Assign(ctx context.Context, req primary.AssignWorkOrderRequest) error {
	wo, err := a.service.AssignWorkOrder(ctx, req)
	if err != nil {
		return err
	}

	success(a.out, "Work order #%d assigned to %s (%s)", wo.ID, wo.AssignedTo, wo.Status)
	return nil
}

// Complete marks a work order completed.
func (a *WorkOrderAdapter) Complete(ctx context.Context, req primary.TransitionRequest) error {
	return a.report(a.service.CompleteWorkOrder(ctx, req))
}

// Review moves a work order into review.
func (a *WorkOrderAdapter) Review(ctx context.Context, req primary.TransitionRequest) error {
	return a.report(a.service.SubmitForReview(ctx, req))
}

// Approve approves a work order.
func (a *WorkOrderAdapter) Approve(ctx context.Context, req primary.TransitionRequest) error {
	return a.report(a.service.ApproveWorkOrder(ctx, req))
}

// Reject rejects a work order.
func (a *WorkOrderAdapter) Reject(ctx context.Context, req primary.TransitionRequest) error {
	return a.report(a.service.RejectWorkOrder(ctx, req))
}

// Edit updates a work order's title and/or details.
func (a *WorkOrderAdapter) Edit(ctx context.Context, req primary.UpdateWorkOrderRequest) error {
	if req.Title == nil && req.Details == nil {
		return fmt.Errorf("must specify at least --title or --details")
	}

	wo, err := a.service.UpdateWorkOrder(ctx, req)
	if err != nil {
		return err
	}

	success(a.out, "Work order #%d updated", wo.ID)
	return nil
}

func (a *WorkOrderAdapter) report(wo *primary.WorkOrder, err error) error {
	if err != nil {
		return err
	}
	success(a.out, "Work order #%d is now %s", wo.ID, colorStatus(wo.Status, 0))
	return nil
}

func (a *WorkOrderAdapter) printTable(orders []*primary.WorkOrder) {
	if len(orders) == 0 {
		fmt.Fprintln(a.out, "No work orders found")
		return
	}

	fmt.Fprintf(a.out, "\n%-5s %-12s %-10s %-6s %-9s %s\n", "ID", "STATUS", "ASSIGNEE", "BASE", "AIRCRAFT", "TITLE")
	fmt.Fprintln(a.out, rule)
	for _, wo := range orders {
		assignee := wo.AssignedTo
		if assignee == "" {
			assignee = "-"
		}
		fmt.Fprintf(a.out, "%-5d %s %-10s %-6s %-9s %s\n",
			wo.ID, colorStatus(wo.Status, 12), assignee, wo.BaseID, wo.AircraftTail, wo.Title)
	}
	fmt.Fprintln(a.out)
}
