package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/example/esys/internal/ports/primary"
	"github.com/example/esys/internal/wire"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List user accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter, err := wire.UserAdapter(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return adapter.List(actorContext(cmd))
	},
}

var userAddCmd = &cobra.Command{
	Use:   "add [username]",
	Short: "Create a user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, _ := cmd.Flags().GetString("role")
		password, err := readSecret(cmd, "password", "Password for "+args[0]+": ")
		if err != nil {
			return err
		}

		adapter, err := wire.UserAdapter(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return adapter.Add(actorContext(cmd), primary.CreateUserRequest{
			Username: args[0],
			Password: password,
			Role:     role,
		})
	},
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete [username]",
	Short: "Delete a user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter, err := wire.UserAdapter(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return adapter.Delete(actorContext(cmd), args[0])
	},
}

var stockCmd = &cobra.Command{
	Use:   "stock",
	Short: "Manage inventory",
}

var stockListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stock items",
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter, err := wire.InventoryAdapter(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return adapter.List(actorContext(cmd))
	},
}

var stockLowCmd = &cobra.Command{
	Use:   "low",
	Short: "List items below their minimum quantity",
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter, err := wire.InventoryAdapter(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return adapter.Low(actorContext(cmd))
	},
}

var stockSetCmd = &cobra.Command{
	Use:   "set [part-no]",
	Short: "Insert or replace a stock item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		qty, _ := cmd.Flags().GetInt("qty")
		minQty, _ := cmd.Flags().GetInt("min")

		adapter, err := wire.InventoryAdapter(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return adapter.Set(actorContext(cmd), primary.UpsertItemRequest{
			PartNo: args[0],
			Name:   name,
			Qty:    qty,
			MinQty: minQty,
		})
	},
}

var stockAdjustCmd = &cobra.Command{
	Use:   "adjust [part-no]",
	Short: "Change an item quantity by --delta (clamped at zero)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("delta") {
			return fmt.Errorf("--delta flag is required")
		}
		delta, _ := cmd.Flags().GetInt("delta")

		adapter, err := wire.InventoryAdapter(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return adapter.Adjust(actorContext(cmd), args[0], delta)
	},
}

var stockDeleteCmd = &cobra.Command{
	Use:   "delete [part-no]",
	Short: "Delete a stock item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter, err := wire.InventoryAdapter(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return adapter.Delete(actorContext(cmd), args[0])
	},
}

var trainingCmd = &cobra.Command{
	Use:   "training",
	Short: "Manage training sessions and assignments",
}

var trainingSessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List training sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter, err := wire.TrainingAdapter(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return adapter.Sessions(actorContext(cmd))
	},
}

var trainingAddSessionCmd = &cobra.Command{
	Use:   "add-session [title] [date]",
	Short: "Create a training session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter, err := wire.TrainingAdapter(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return adapter.AddSession(actorContext(cmd), args[0], args[1])
	},
}

var trainingAssignCmd = &cobra.Command{
	Use:   "assign [username] [session-id]",
	Short: "Assign a user to a session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, err := parseSessionID(args[1])
		if err != nil {
			return err
		}
		adapter, err := wire.TrainingAdapter(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return adapter.Assign(actorContext(cmd), args[0], sessionID)
	},
}

var trainingStatusCmd = &cobra.Command{
	Use:   "status [username] [session-id] [scheduled|completed|missed]",
	Short: "Set a training assignment status",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, err := parseSessionID(args[1])
		if err != nil {
			return err
		}
		adapter, err := wire.TrainingAdapter(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return adapter.SetStatus(actorContext(cmd), args[0], sessionID, args[2])
	},
}

var trainingAssignmentsCmd = &cobra.Command{
	Use:   "assignments",
	Short: "List training assignments",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		adapter, err := wire.TrainingAdapter(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return adapter.Assignments(actorContext(cmd), user)
	},
}

func init() {
	userAddCmd.Flags().StringP("password", "p", "", "Password (read from stdin when omitted)")
	userAddCmd.Flags().StringP("role", "r", "", "Role (see esys roles)")
	_ = userAddCmd.MarkFlagRequired("role")

	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userDeleteCmd)

	stockSetCmd.Flags().String("name", "", "Item name")
	stockSetCmd.Flags().Int("qty", 0, "Quantity on hand")
	stockSetCmd.Flags().Int("min", 0, "Minimum quantity before the item is low")
	stockAdjustCmd.Flags().Int("delta", 0, "Quantity change, negative to consume")

	stockCmd.AddCommand(stockListCmd)
	stockCmd.AddCommand(stockLowCmd)
	stockCmd.AddCommand(stockSetCmd)
	stockCmd.AddCommand(stockAdjustCmd)
	stockCmd.AddCommand(stockDeleteCmd)

	trainingAssignmentsCmd.Flags().String("user", "", "Only this user's assignments")

	trainingCmd.AddCommand(trainingSessionsCmd)
	trainingCmd.AddCommand(trainingAddSessionCmd)
	trainingCmd.AddCommand(trainingAssignCmd)
	trainingCmd.AddCommand(trainingStatusCmd)
	trainingCmd.AddCommand(trainingAssignmentsCmd)
}

// UserCmd returns the user command
func UserCmd() *cobra.Command {
	return userCmd
}

// StockCmd returns the stock command
func StockCmd() *cobra.Command {
	return stockCmd
}

// TrainingCmd returns the training command
func TrainingCmd() *cobra.Command {
	return trainingCmd
}

func parseSessionID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid session id %q", raw)
	}
	return id, nil
}
