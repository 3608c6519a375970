package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/esys/internal/cli"
	"github.com/example/esys/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "esys",
		Short:   "esys - Engineering support work order service",
		Version: version.String(),
		Long: `esys tracks aircraft maintenance work orders through their lifecycle,
enforcing per-role permissions and the selected airbase/aircraft context.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: cli.Setup,
		PersistentPostRun: cli.Teardown,
	}

	// Session and context
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.LoginCmd())
	rootCmd.AddCommand(cli.LogoutCmd())
	rootCmd.AddCommand(cli.WhoamiCmd())
	rootCmd.AddCommand(cli.ContextCmd())
	rootCmd.AddCommand(cli.RolesCmd())

	// Records
	rootCmd.AddCommand(cli.TaskCmd())
	rootCmd.AddCommand(cli.UserCmd())
	rootCmd.AddCommand(cli.StockCmd())
	rootCmd.AddCommand(cli.TrainingCmd())
	rootCmd.AddCommand(cli.SummaryCmd())
	rootCmd.AddCommand(cli.AuditCmd())

	// API
	rootCmd.AddCommand(cli.ServeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
