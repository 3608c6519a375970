package postgres

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/example/esys/internal/models"
)

// setupTestStore starts PostgreSQL in a container, applies migrations and
// returns a store. Skipped unless TEST_INTEGRATION is set.
func setupTestStore(t *testing.T) *CollectionStore {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("skipping integration test: TEST_INTEGRATION not set")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"docker.io/postgres:17-alpine",
		tcpostgres.WithDatabase("esys_test"),
		tcpostgres.WithUsername("esys"),
		tcpostgres.WithPassword("test-password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to stop container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	if err := Migrate(dsn, logger); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	// Second run is a no-op.
	if err := Migrate(dsn, logger); err != nil {
		t.Fatalf("Migrate (again): %v", err)
	}

	pool, err := Connect(ctx, dsn, logger)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(pool.Close)

	return NewCollectionStore(pool, logger)
}

func TestMigrateURL(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@h:5432/db?sslmode=disable":   "pgx5://u:p@h:5432/db?sslmode=disable",
		"postgresql://u:p@h:5432/db?sslmode=disable": "pgx5://u:p@h:5432/db?sslmode=disable",
		"pgx5://u:p@h/db":                            "pgx5://u:p@h/db",
	}
	for in, want := range tests {
		if got := MigrateURL(in); got != want {
			t.Errorf("MigrateURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCollectionStore_RoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	var empty []models.Task
	if err := store.Load(ctx, "tasks", &empty); err != nil {
		t.Fatalf("Load (missing): %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no tasks, got %d", len(empty))
	}

	eng := "eng1"
	tasks := []models.Task{{ID: 1, Title: "Brake check", AssignedTo: &eng, Status: "in_progress", BaseID: "OOMS", AircraftTail: "A6-ABC", Version: 2}}
	if err := store.Save(ctx, "tasks", tasks); err != nil {
		t.Fatalf("Save: %v", err)
	}
	tasks[0].Status = "completed"
	if err := store.Save(ctx, "tasks", tasks); err != nil {
		t.Fatalf("Save (replace): %v", err)
	}

	var got []models.Task
	if err := store.Load(ctx, "tasks", &got); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 || got[0].Status != "completed" || got[0].AssignedTo == nil || *got[0].AssignedTo != "eng1" {
		t.Errorf("Load = %+v", got)
	}

	if err := store.CheckReady(ctx); err != nil {
		t.Errorf("CheckReady: %v", err)
	}
}
