package persistence

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/example/esys/internal/adapters/jsonfile"
	"github.com/example/esys/internal/models"
	"github.com/example/esys/internal/ports/secondary"
)

// newTestStore creates a JSON file store in a temp directory.
func newTestStore(t *testing.T) *jsonfile.Store {
	t.Helper()
	store, err := jsonfile.New(t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("jsonfile.New: %v", err)
	}
	return store
}

// seedFleet writes the OOMS/A6-ABC registry used across tests.
func seedFleet(t *testing.T, store secondary.CollectionStore) {
	t.Helper()
	ctx := context.Background()
	if err := store.Save(ctx, secondary.CollectionAirbases, []models.Airbase{
		{ID: "OOMS", Name: "Muscat International"},
		{ID: "OOSA", Name: "Salalah"},
	}); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(ctx, secondary.CollectionAircraft, []models.Aircraft{
		{Tail: "A6-ABC", BaseID: "OOMS", Model: "A320"},
		{Tail: "A6-DEF", BaseID: "OOMS", Model: "B737-800"},
		{Tail: "A4O-SLL", BaseID: "OOSA", Model: "ATR 72"},
	}); err != nil {
		t.Fatal(err)
	}
}

func strPtr(s string) *string { return &s }
