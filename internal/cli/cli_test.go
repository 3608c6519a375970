package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/example/esys/internal/config"
	"github.com/example/esys/internal/ctxutil"
	"github.com/example/esys/internal/wire"
)

func newTestRoot() *cobra.Command {
	root := &cobra.Command{
		Use:               "esys",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: Setup,
		PersistentPostRun: Teardown,
	}
	root.AddCommand(InitCmd(), LoginCmd(), LogoutCmd(), WhoamiCmd(), ContextCmd(), RolesCmd())
	root.AddCommand(TaskCmd(), UserCmd(), StockCmd(), TrainingCmd(), SummaryCmd(), AuditCmd())
	return root
}

func run(t *testing.T, root *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// The wire singletons are process-wide, so the whole session runs in one test.
func TestCommandSession(t *testing.T) {
	home := t.TempDir()
	t.Setenv("ESYS_HOME", home)
	t.Setenv("ESYS_DATA_DIR", filepath.Join(home, "data"))
	t.Setenv("ESYS_STORE_DRIVER", config.DriverJSON)

	root := newTestRoot()
	mustRun := func(args ...string) string {
		t.Helper()
		out, err := run(t, root, args...)
		if err != nil {
			t.Fatalf("esys %s: %v\n%s", strings.Join(args, " "), err, out)
		}
		return out
	}

	if _, err := run(t, root, "task", "list"); err == nil || !strings.Contains(err.Error(), "not logged in") {
		t.Fatalf("task list before login: err = %v, want not logged in", err)
	}

	mustRun("init", "--admin-password", "admin-pass", "--sample-users", "--sample-password", "pw")

	if _, err := run(t, root, "login", "admin1", "--password", "wrong"); err == nil {
		t.Fatal("login with a wrong password succeeded")
	}
	mustRun("login", "admin1", "--password", "admin-pass")

	if _, err := run(t, root, "context", "set", "OOSA", "A6-ABC"); err == nil {
		t.Fatal("context set accepted an aircraft from another base")
	}
	mustRun("context", "set", "OOMS", "a6-abc")

	mustRun("task", "create", "Hydraulic leak", "--details", "left main gear")
	mustRun("task", "assign", "1", "eng1")

	mustRun("login", "eng2", "--password", "pw")
	mustRun("context", "set", "OOMS", "A6-ABC")
	if _, err := run(t, root, "task", "complete", "1"); err == nil {
		t.Fatal("eng2 completed a work order assigned to eng1")
	}

	mustRun("login", "eng1", "--password", "pw")
	mustRun("context", "set", "OOMS", "A6-ABC")
	mustRun("task", "complete", "1")

	if out := mustRun("task", "list"); !strings.Contains(out, "Hydraulic leak") {
		t.Errorf("task list output missing work order:\n%s", out)
	}

	cfg, err := config.LoadConfig(home)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := config.SessionConfig{Username: "eng1", Role: "engineer", BaseID: "OOMS", Tail: "A6-ABC"}
	if cfg.Session != want {
		t.Errorf("saved session = %+v, want %+v", cfg.Session, want)
	}

	svc, err := wire.All()
	if err != nil {
		t.Fatalf("wire.All: %v", err)
	}
	ctx := ctxutil.WithActor(context.Background(), ctxutil.Actor{Username: "eng1", Role: "engineer"})
	wo, err := svc.WorkOrders.GetWorkOrder(ctx, 1)
	if err != nil {
		t.Fatalf("GetWorkOrder: %v", err)
	}
	if wo.Status != "completed" || wo.AssignedTo != "eng1" {
		t.Errorf("work order = %+v, want completed by eng1", wo)
	}

	mustRun("logout")
	if out := mustRun("whoami"); !strings.Contains(out, "Not logged in") {
		t.Errorf("whoami after logout = %q", out)
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"1", 1, false},
		{"42", 42, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		got, err := parseID(tt.raw)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseID(%q) = %d, %v", tt.raw, got, err)
		}
	}
}

func TestReadSecretFallsBackToStdin(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("password", "", "")
	cmd.SetIn(strings.NewReader("s3cret\n"))
	cmd.SetErr(&bytes.Buffer{})

	got, err := readSecret(cmd, "password", "Password: ")
	if err != nil {
		t.Fatalf("readSecret: %v", err)
	}
	if got != "s3cret" {
		t.Errorf("readSecret = %q, want s3cret", got)
	}
}

func TestPrintCapabilitiesUsesPreferredLabels(t *testing.T) {
	var out bytes.Buffer
	printCapabilities(&out, "admin")

	got := out.String()
	if !strings.Contains(got, "View All Work Orders (view_all_tasks)") {
		t.Errorf("missing preferred label for view_all_tasks:\n%s", got)
	}
	if !strings.Contains(got, "can_manage_users:  true") {
		t.Errorf("missing admin capability:\n%s", got)
	}
}
