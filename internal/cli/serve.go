package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/esys/internal/ports/primary"
	"github.com/example/esys/internal/wire"
)

// SummaryCmd returns the summary command
func SummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show dashboard counters for the current context",
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.SummaryAdapter(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.Summary(actorContext(cmd))
		},
	}
}

// AuditCmd returns the audit command
func AuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show recent audit log entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			entityType, _ := cmd.Flags().GetString("type")
			entityID, _ := cmd.Flags().GetString("id")
			actor, _ := cmd.Flags().GetString("actor")
			limit, _ := cmd.Flags().GetInt("limit")

			adapter, err := wire.SummaryAdapter(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.Audit(actorContext(cmd), primary.AuditFilters{
				EntityType: entityType,
				EntityID:   entityID,
				Actor:      actor,
				Limit:      limit,
			})
		},
	}
	cmd.Flags().String("type", "", "Filter by entity type (task, user, stock, training, ...)")
	cmd.Flags().String("id", "", "Filter by entity id")
	cmd.Flags().String("actor", "", "Filter by acting user")
	cmd.Flags().IntP("limit", "n", 20, "Maximum entries to show")
	return cmd
}

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the JSON API under /api/v1 with Prometheus metrics on /metrics.
Requires token.secret (or ESYS_TOKEN_SECRET) of at least 16 characters.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				wire.Config().HTTP.Addr = addr
			}

			server, err := wire.HTTPServer()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.Run(ctx)
		},
	}
	cmd.Flags().String("addr", "", "Listen address (overrides http.addr)")
	return cmd
}
