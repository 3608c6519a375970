package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/esys/internal/config"
	corefleet "github.com/example/esys/internal/core/fleet"
	"github.com/example/esys/internal/core/roles"
	"github.com/example/esys/internal/db"
	"github.com/example/esys/internal/wire"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the esys data store",
		Long: `Write the config file if missing, then seed the default admin account
and the airbase/aircraft registry into empty collections.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cfg := wire.Config()
			if _, err := os.Stat(config.Path(homeDir)); errors.Is(err, os.ErrNotExist) {
				if err := config.SaveConfig(homeDir, cfg); err != nil {
					return err
				}
				fmt.Fprintf(out, "✓ Config written to %s\n", config.Path(homeDir))
			}

			adminPassword, _ := cmd.Flags().GetString("admin-password")
			if adminPassword == "" {
				adminPassword = os.Getenv("ESYS_ADMIN_PASSWORD")
			}
			samples, _ := cmd.Flags().GetBool("sample-users")
			samplePassword, _ := cmd.Flags().GetString("sample-password")
			if samples && samplePassword == "" {
				return fmt.Errorf("--sample-password is required with --sample-users")
			}

			svc, err := wire.All()
			if err != nil {
				return err
			}
			result, err := db.SeedFixtures(cmd.Context(), svc.Store, db.SeedOptions{
				AdminPassword:  adminPassword,
				SampleUsers:    samples,
				SamplePassword: samplePassword,
			})
			if err != nil {
				return fmt.Errorf("failed to seed store: %w\nHint: pass --admin-password or set ESYS_ADMIN_PASSWORD", err)
			}

			fmt.Fprintf(out, "✓ Store ready (%s driver)\n", cfg.Store.Driver)
			fmt.Fprintf(out, "  Users seeded:    %d\n", result.Users)
			fmt.Fprintf(out, "  Airbases seeded: %d\n", result.Airbases)
			fmt.Fprintf(out, "  Aircraft seeded: %d\n", result.Aircraft)
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Next steps:")
			fmt.Fprintln(out, "  esys login admin1")
			fmt.Fprintln(out, "  esys context set OOMS A6-ABC")
			return nil
		},
	}
	cmd.Flags().String("admin-password", "", "Password for the admin1 account")
	cmd.Flags().Bool("sample-users", false, "Also create one account per common role")
	cmd.Flags().String("sample-password", "", "Password for the sample accounts")
	return cmd
}

// LoginCmd returns the login command
func LoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login [username]",
		Short: "Log in and start a CLI session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			password, err := readSecret(cmd, "password", "Password: ")
			if err != nil {
				return err
			}

			svc, err := wire.All()
			if err != nil {
				return err
			}
			user, err := svc.Users.Authenticate(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}

			if err := saveSession(config.SessionConfig{Username: user.Username, Role: user.Role}); err != nil {
				return err
			}
			fmt.Fprintf(out, "✓ Logged in as %s (%s)\n", user.Username, roles.DisplayName(user.Role))
			fmt.Fprintln(out, "  Select a context with: esys context set <base> <tail>")
			return nil
		},
	}
	cmd.Flags().StringP("password", "p", "", "Password (read from stdin when omitted)")
	return cmd
}

// LogoutCmd returns the logout command
func LogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the CLI session",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if err := saveSession(config.SessionConfig{}); err != nil {
				return err
			}
			fmt.Fprintln(out, "✓ Logged out")
			return nil
		},
	}
}

// WhoamiCmd returns the whoami command
func WhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the session user, role and context",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			s := wire.Config().Session
			if !s.LoggedIn() {
				fmt.Fprintln(out, "Not logged in")
				return nil
			}

			fmt.Fprintf(out, "User:     %s\n", s.Username)
			fmt.Fprintf(out, "Role:     %s\n", roles.DisplayName(s.Role))
			if s.BaseID != "" {
				fmt.Fprintf(out, "Context:  %s / %s\n", s.BaseID, s.Tail)
			} else {
				fmt.Fprintln(out, "Context:  (none)")
			}
			printCapabilities(out, s.Role)
			return nil
		},
	}
}

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Select the working airbase and aircraft",
}

var contextListCmd = &cobra.Command{
	Use:   "list",
	Short: "List airbases",
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter, err := wire.FleetAdapter(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return adapter.Airbases(actorContext(cmd))
	},
}

var contextAircraftCmd = &cobra.Command{
	Use:   "aircraft [base-id]",
	Short: "List aircraft stationed at a base",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter, err := wire.FleetAdapter(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return adapter.Aircraft(actorContext(cmd), args[0])
	},
}

var contextSetCmd = &cobra.Command{
	Use:   "set [base-id] [tail]",
	Short: "Set the working context for this session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		session := wire.Config().Session
		if !session.LoggedIn() {
			return fmt.Errorf("not logged in\nHint: esys login <username>")
		}

		svc, err := wire.All()
		if err != nil {
			return err
		}
		baseID := strings.TrimSpace(args[0])
		tail := corefleet.NormalizeTail(args[1])
		if err := svc.Fleet.ResolveContext(cmd.Context(), baseID, tail); err != nil {
			return err
		}

		session.BaseID = baseID
		session.Tail = tail
		if err := saveSession(session); err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Context set to %s / %s\n", baseID, tail)
		return nil
	},
}

var contextClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the working context",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		session := wire.Config().Session
		session.BaseID = ""
		session.Tail = ""
		if err := saveSession(session); err != nil {
			return err
		}
		fmt.Fprintln(out, "✓ Context cleared")
		return nil
	},
}

func init() {
	contextCmd.AddCommand(contextListCmd)
	contextCmd.AddCommand(contextAircraftCmd)
	contextCmd.AddCommand(contextSetCmd)
	contextCmd.AddCommand(contextClearCmd)
}

// ContextCmd returns the context command
func ContextCmd() *cobra.Command {
	return contextCmd
}

// RolesCmd returns the roles command
func RolesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roles [role]",
		Short: "List roles, or show what one role may do",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				if !roles.IsValid(args[0]) {
					return fmt.Errorf("unknown role %q", args[0])
				}
				fmt.Fprintf(out, "Role: %s (%s)\n", roles.DisplayName(args[0]), args[0])
				printCapabilities(out, args[0])
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ROLE\tNAME\tACTIONS")
			for _, role := range roles.All() {
				fmt.Fprintf(w, "%s\t%s\t%d\n", role, roles.DisplayName(role), len(roles.ActionsFor(role)))
			}
			return w.Flush()
		},
	}
}

func printCapabilities(out io.Writer, role string) {
	c := roles.CapabilitiesFor(role)
	fmt.Fprintln(out, "Capabilities:")
	fmt.Fprintf(out, "  can_assign:        %t\n", c.CanAssign)
	fmt.Fprintf(out, "  can_mark_complete: %t\n", c.CanMarkComplete)
	fmt.Fprintf(out, "  can_manage_users:  %t\n", c.CanManageUsers)
	fmt.Fprintf(out, "  can_create_task:   %t\n", c.CanCreateTask)

	actions := roles.ActionsFor(role)
	if len(actions) == 0 {
		return
	}
	fmt.Fprintln(out, "Actions:")
	for _, a := range actions {
		fmt.Fprintf(out, "  - %s (%s)\n", roles.ActionLabel(a.Key, a.Label), a.Key)
	}
}
