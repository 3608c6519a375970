package sqlite_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/example/esys/internal/adapters/sqlite"
	"github.com/example/esys/internal/models"
)

func TestCollectionStore_LoadMissing(t *testing.T) {
	store := sqlite.NewCollectionStore(setupTestDB(t), nil)

	var tasks []models.Task
	if err := store.Load(context.Background(), "tasks", &tasks); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("len(tasks) = %d, want 0", len(tasks))
	}
}

func TestCollectionStore_SaveAndReplace(t *testing.T) {
	testDB := setupTestDB(t)
	store := sqlite.NewCollectionStore(testDB, nil)
	ctx := context.Background()

	first := []models.StockItem{{PartNo: "P-1", Name: "Filter", Qty: 1, MinQty: 2}}
	if err := store.Save(ctx, "stock", first); err != nil {
		t.Fatalf("Save: %v", err)
	}
	second := append(first, models.StockItem{PartNo: "P-2", Name: "Seal", Qty: 9})
	if err := store.Save(ctx, "stock", second); err != nil {
		t.Fatalf("Save (replace): %v", err)
	}

	var rows int
	if err := testDB.QueryRow("SELECT COUNT(*) FROM collections WHERE name = 'stock'").Scan(&rows); err != nil {
		t.Fatal(err)
	}
	if rows != 1 {
		t.Errorf("rows = %d, want 1", rows)
	}

	var got []models.StockItem
	if err := store.Load(ctx, "stock", &got); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 || got[1].PartNo != "P-2" {
		t.Errorf("Load = %+v", got)
	}
}

func TestCollectionStore_MalformedRow(t *testing.T) {
	testDB := setupTestDB(t)
	var logs bytes.Buffer
	store := sqlite.NewCollectionStore(testDB, slog.New(slog.NewTextHandler(&logs, nil)))

	if _, err := testDB.Exec("INSERT INTO collections (name, body) VALUES ('users', 'nope')"); err != nil {
		t.Fatal(err)
	}

	var users []models.User
	if err := store.Load(context.Background(), "users", &users); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if users != nil {
		t.Errorf("users = %+v, want nil", users)
	}
	if !strings.Contains(logs.String(), "malformed") {
		t.Errorf("expected warning, got %q", logs.String())
	}
}

func TestCollectionStore_CheckReady(t *testing.T) {
	testDB := setupTestDB(t)
	store := sqlite.NewCollectionStore(testDB, nil)

	if err := store.CheckReady(context.Background()); err != nil {
		t.Fatalf("CheckReady: %v", err)
	}

	testDB.Close()
	if err := store.CheckReady(context.Background()); err == nil {
		t.Error("CheckReady on a closed database succeeded")
	}
}
