// Package cli holds the cobra commands for the esys binary.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/esys/internal/config"
	"github.com/example/esys/internal/ctxutil"
	"github.com/example/esys/internal/wire"
)

var homeDir string

// Setup loads the config, installs the logger and configures wiring.
// It is the root command's PersistentPreRunE.
func Setup(cmd *cobra.Command, args []string) error {
	home, err := config.HomeDir()
	if err != nil {
		return err
	}
	cfg, err := config.LoadConfig(home)
	if err != nil {
		return err
	}
	homeDir = home
	logger := config.SetupLogger(cfg, os.Stderr)
	wire.Configure(cfg, logger)
	return nil
}

// Teardown releases store connections. It is the root command's PersistentPostRun.
func Teardown(cmd *cobra.Command, args []string) {
	wire.Close()
}

// actorContext returns the command context carrying the logged-in session, if any.
func actorContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s := wire.Config().Session
	if !s.LoggedIn() {
		return ctx
	}
	return ctxutil.WithActor(ctx, ctxutil.Actor{
		Username: s.Username,
		Role:     s.Role,
		BaseID:   s.BaseID,
		Tail:     s.Tail,
	})
}

func saveSession(session config.SessionConfig) error {
	cfg := wire.Config()
	cfg.Session = session
	if err := config.SaveConfig(homeDir, cfg); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// readSecret returns the flag value, falling back to one line of stdin.
func readSecret(cmd *cobra.Command, flag, prompt string) (string, error) {
	value, _ := cmd.Flags().GetString(flag)
	if value != "" {
		return value, nil
	}

	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read %s: %w", flag, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
