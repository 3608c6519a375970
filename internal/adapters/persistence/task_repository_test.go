package persistence

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/example/esys/internal/apperr"
	"github.com/example/esys/internal/models"
	"github.com/example/esys/internal/ports/secondary"
)

func TestTaskRepository_CreateAssignsSequentialIDs(t *testing.T) {
	repo := NewTaskRepository(newTestStore(t))
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		rec := &secondary.TaskRecord{Title: "Task", Status: "pending", BaseID: "OOMS", AircraftTail: "A6-ABC"}
		if err := repo.Create(ctx, rec); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if rec.ID != want {
			t.Errorf("ID = %d, want %d", rec.ID, want)
		}
		if rec.Version != 1 {
			t.Errorf("Version = %d, want 1", rec.Version)
		}
	}
}

func TestTaskRepository_CreateAfterGap(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	if err := store.Save(ctx, secondary.CollectionTasks, []models.Task{{ID: 2}, {ID: 9}, {ID: 4}}); err != nil {
		t.Fatal(err)
	}

	repo := NewTaskRepository(store)
	rec := &secondary.TaskRecord{Title: "Next"}
	if err := repo.Create(ctx, rec); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.ID != 10 {
		t.Errorf("ID = %d, want 10", rec.ID)
	}
}

func TestTaskRepository_ListFilters(t *testing.T) {
	repo := NewTaskRepository(newTestStore(t))
	ctx := context.Background()

	seed := []secondary.TaskRecord{
		{Title: "a", Status: "pending", BaseID: "OOMS", AircraftTail: "A6-ABC"},
		{Title: "b", Status: "in_progress", BaseID: "OOMS", AircraftTail: "A6-DEF", AssignedTo: "eng1"},
		{Title: "c", Status: "in_progress", BaseID: "OOSA", AircraftTail: "A4O-SLL", AssignedTo: "eng1"},
	}
	for i := range seed {
		if err := repo.Create(ctx, &seed[i]); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name    string
		filters secondary.TaskFilters
		want    []string
	}{
		{"no filters", secondary.TaskFilters{}, []string{"a", "b", "c"}},
		{"base only", secondary.TaskFilters{BaseID: "OOMS"}, []string{"a", "b"}},
		{"base and tail", secondary.TaskFilters{BaseID: "OOMS", AircraftTail: "A6-DEF"}, []string{"b"}},
		{"assignee", secondary.TaskFilters{AssignedTo: "eng1"}, []string{"b", "c"}},
		{"status", secondary.TaskFilters{Status: "pending"}, []string{"a"}},
		{"no match", secondary.TaskFilters{BaseID: "OOSA", AircraftTail: "A6-ABC"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(ctx, tt.filters)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i, title := range tt.want {
				if got[i].Title != title {
					t.Errorf("[%d] = %q, want %q", i, got[i].Title, title)
				}
			}
		})
	}
}

func TestTaskRepository_UpdateMergesPatch(t *testing.T) {
	repo := NewTaskRepository(newTestStore(t))
	repo.now = func() time.Time { return time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	rec := &secondary.TaskRecord{Title: "Brake check", Details: "left gear", Status: "pending", BaseID: "OOMS", AircraftTail: "A6-ABC"}
	if err := repo.Create(ctx, rec); err != nil {
		t.Fatal(err)
	}

	updated, err := repo.Update(ctx, rec.ID, secondary.TaskPatch{
		AssignedTo: strPtr("eng1"),
		Status:     strPtr("in_progress"),
	}, 0)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.AssignedTo != "eng1" || updated.Status != "in_progress" {
		t.Errorf("updated = %+v", updated)
	}
	if updated.Details != "left gear" || updated.Title != "Brake check" {
		t.Errorf("unpatched fields changed: %+v", updated)
	}
	if updated.Version != 2 {
		t.Errorf("Version = %d, want 2", updated.Version)
	}
	if updated.UpdatedAt != "2025-09-01T08:00:00Z" {
		t.Errorf("UpdatedAt = %q", updated.UpdatedAt)
	}
}

func TestTaskRepository_UpdateMissing(t *testing.T) {
	repo := NewTaskRepository(newTestStore(t))
	_, err := repo.Update(context.Background(), 42, secondary.TaskPatch{Status: strPtr("completed")}, 0)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestTaskRepository_UpdateStaleVersion(t *testing.T) {
	repo := NewTaskRepository(newTestStore(t))
	ctx := context.Background()

	rec := &secondary.TaskRecord{Title: "x", Status: "pending"}
	if err := repo.Create(ctx, rec); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Update(ctx, rec.ID, secondary.TaskPatch{Title: strPtr("y")}, 1); err != nil {
		t.Fatalf("Update with current version: %v", err)
	}

	_, err := repo.Update(ctx, rec.ID, secondary.TaskPatch{Title: strPtr("z")}, 1)
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}

	got, err := repo.GetByID(ctx, rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "y" {
		t.Errorf("Title = %q, stale update must not apply", got.Title)
	}
}

func TestTaskRepository_ClearAssigneeWritesNull(t *testing.T) {
	store := newTestStore(t)
	repo := NewTaskRepository(store)
	ctx := context.Background()

	rec := &secondary.TaskRecord{Title: "x", AssignedTo: "eng1", Status: "in_progress"}
	if err := repo.Create(ctx, rec); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Update(ctx, rec.ID, secondary.TaskPatch{AssignedTo: strPtr("")}, 0); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(store.Path(secondary.CollectionTasks))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `"assigned_to": null`) {
		t.Errorf("expected null assignee in file:\n%s", raw)
	}
}

func TestTaskRepository_LegacyDocumentHasVersionOne(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	if err := store.Save(ctx, secondary.CollectionTasks, []models.Task{{ID: 5, Title: "legacy", Status: "pending"}}); err != nil {
		t.Fatal(err)
	}

	repo := NewTaskRepository(store)
	got, err := repo.GetByID(ctx, 5)
	if err != nil {
		t.Fatal(err)
	}
	if got.Version != 1 {
		t.Errorf("Version = %d, want 1", got.Version)
	}
	if _, err := repo.Update(ctx, 5, secondary.TaskPatch{Title: strPtr("new")}, 1); err != nil {
		t.Errorf("Update with version 1 on legacy document: %v", err)
	}
}
