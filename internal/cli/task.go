package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cliadapter "github.com/example/esys/internal/adapters/cli"
	"github.com/example/esys/internal/ports/primary"
	"github.com/example/esys/internal/wire"
)

var taskCmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"wo"},
	Short:   "Manage work orders",
	Long:    "Create, assign, complete and decide work orders in the selected airbase/aircraft context",
}

var taskCreateCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a new work order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		details, _ := cmd.Flags().GetString("details")
		assignee, _ := cmd.Flags().GetString("assign")
		status, _ := cmd.Flags().GetString("status")
		baseID, _ := cmd.Flags().GetString("base")
		tail, _ := cmd.Flags().GetString("tail")

		adapter, err := wire.WorkOrderAdapterWithOutput(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return adapter.Create(actorContext(cmd), primary.CreateWorkOrderRequest{
			Title:        args[0],
			Details:      details,
			AssignedTo:   assignee,
			Status:       status,
			BaseID:       baseID,
			AircraftTail: tail,
		})
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List work orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		baseID, _ := cmd.Flags().GetString("base")
		tail, _ := cmd.Flags().GetString("tail")
		assignee, _ := cmd.Flags().GetString("assigned")
		status, _ := cmd.Flags().GetString("status")

		adapter, err := wire.WorkOrderAdapterWithOutput(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return adapter.List(actorContext(cmd), primary.WorkOrderFilters{
			BaseID:       baseID,
			AircraftTail: tail,
			AssignedTo:   assignee,
			Status:       status,
		})
	},
}

var taskViewCmd = &cobra.Command{
	Use:   "view [view_all_tasks|view_my_tasks|repair_requests]",
	Short: "List work orders behind a role action in the current context",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		view := primary.ViewMine
		if len(args) == 1 {
			view = args[0]
		}
		adapter, err := wire.WorkOrderAdapterWithOutput(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return adapter.View(actorContext(cmd), view)
	},
}

var taskQueueCmd = &cobra.Command{
	Use:   "queue",
	Short: "List work orders awaiting approval",
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter, err := wire.WorkOrderAdapterWithOutput(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return adapter.Queue(actorContext(cmd))
	},
}

var taskShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show work order details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		adapter, err := wire.WorkOrderAdapterWithOutput(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		_, err = adapter.Show(actorContext(cmd), id)
		return err
	},
}

var taskAssignCmd = &cobra.Command{
	Use:   "assign [id] [username]",
	Short: "Assign a work order and start it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		version, _ := cmd.Flags().GetInt("version")

		adapter, err := wire.WorkOrderAdapterWithOutput(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return adapter.Assign(actorContext(cmd), primary.AssignWorkOrderRequest{
			ID:              id,
			Assignee:        args[1],
			ExpectedVersion: version,
		})
	},
}

var taskCompleteCmd = transitionCmd("complete", "Mark an in-progress work order completed",
	(*cliadapter.WorkOrderAdapter).Complete)

var taskReviewCmd = transitionCmd("review", "Submit a completed work order for review",
	(*cliadapter.WorkOrderAdapter).Review)

var taskApproveCmd = transitionCmd("approve", "Approve a completed or in-review work order",
	(*cliadapter.WorkOrderAdapter).Approve)

var taskRejectCmd = transitionCmd("reject", "Reject a completed or in-review work order",
	(*cliadapter.WorkOrderAdapter).Reject)

var taskEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit a work order title or details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		version, _ := cmd.Flags().GetInt("version")

		req := primary.UpdateWorkOrderRequest{ID: id, ExpectedVersion: version}
		if cmd.Flags().Changed("title") {
			title, _ := cmd.Flags().GetString("title")
			req.Title = &title
		}
		if cmd.Flags().Changed("details") {
			details, _ := cmd.Flags().GetString("details")
			req.Details = &details
		}

		adapter, err := wire.WorkOrderAdapterWithOutput(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return adapter.Edit(actorContext(cmd), req)
	},
}

func init() {
	taskCreateCmd.Flags().StringP("details", "d", "", "Work order details")
	taskCreateCmd.Flags().String("assign", "", "Assign to a user on creation")
	taskCreateCmd.Flags().String("status", "", "Initial status: pending (default) or in_progress")
	taskCreateCmd.Flags().String("base", "", "Airbase (defaults to the session context)")
	taskCreateCmd.Flags().String("tail", "", "Aircraft tail (defaults to the session context)")

	taskListCmd.Flags().String("base", "", "Filter by airbase")
	taskListCmd.Flags().String("tail", "", "Filter by aircraft tail")
	taskListCmd.Flags().String("assigned", "", "Filter by assignee")
	taskListCmd.Flags().StringP("status", "s", "", "Filter by status")

	taskAssignCmd.Flags().Int("version", 0, "Expected version (0 skips the check)")

	taskEditCmd.Flags().String("title", "", "New title")
	taskEditCmd.Flags().StringP("details", "d", "", "New details")
	taskEditCmd.Flags().Int("version", 0, "Expected version (0 skips the check)")

	taskCmd.AddCommand(taskCreateCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskViewCmd)
	taskCmd.AddCommand(taskShowCmd)
	taskCmd.AddCommand(taskAssignCmd)
	taskCmd.AddCommand(taskCompleteCmd)
	taskCmd.AddCommand(taskReviewCmd)
	taskCmd.AddCommand(taskApproveCmd)
	taskCmd.AddCommand(taskRejectCmd)
	taskCmd.AddCommand(taskEditCmd)
	taskCmd.AddCommand(taskQueueCmd)
}

// TaskCmd returns the task command
func TaskCmd() *cobra.Command {
	return taskCmd
}

func transitionCmd(use, short string, apply func(*cliadapter.WorkOrderAdapter, context.Context, primary.TransitionRequest) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " [id]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			version, _ := cmd.Flags().GetInt("version")

			adapter, err := wire.WorkOrderAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return apply(adapter, actorContext(cmd), primary.TransitionRequest{ID: id, ExpectedVersion: version})
		},
	}
	cmd.Flags().Int("version", 0, "Expected version (0 skips the check)")
	return cmd
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid work order id %q", raw)
	}
	return id, nil
}
