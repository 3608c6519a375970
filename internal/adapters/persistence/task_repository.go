// Package persistence contains adapters that implement secondary port
// interfaces on top of a secondary.CollectionStore. Every call loads the
// whole collection, and mutations save it whole under a per-collection lock.
package persistence

import (
	"context"
	"sync"
	"time"

	"github.com/example/esys/internal/apperr"
	"github.com/example/esys/internal/models"
	"github.com/example/esys/internal/ports/secondary"
)

// timestampLayout is used for created_at/updated_at and audit entries.
const timestampLayout = time.RFC3339

// TaskRepository implements secondary.TaskRepository.
type TaskRepository struct {
	store secondary.CollectionStore
	now   func() time.Time
	mu    sync.Mutex
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(store secondary.CollectionStore) *TaskRepository {
	return &TaskRepository{store: store, now: time.Now}
}

func (r *TaskRepository) load(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.store.Load(ctx, secondary.CollectionTasks, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Create assigns the next id and persists the task.
func (r *TaskRepository) Create(ctx context.Context, task *secondary.TaskRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.load(ctx)
	if err != nil {
		return err
	}

	stamp := r.now().UTC().Format(timestampLayout)
	task.ID = models.NextTaskID(tasks)
	task.Version = 1
	task.CreatedAt = stamp
	task.UpdatedAt = stamp

	tasks = append(tasks, toTaskModel(task))
	return r.store.Save(ctx, secondary.CollectionTasks, tasks)
}

// GetByID retrieves a task by its id.
func (r *TaskRepository) GetByID(ctx context.Context, id int) (*secondary.TaskRecord, error) {
	tasks, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID == id {
			return toTaskRecord(tasks[i]), nil
		}
	}
	return nil, apperr.NotFound("work order #%d not found", id)
}

// List retrieves tasks matching every non-empty filter field, in stored order.
func (r *TaskRepository) List(ctx context.Context, filters secondary.TaskFilters) ([]*secondary.TaskRecord, error) {
	tasks, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]*secondary.TaskRecord, 0, len(tasks))
	for _, t := range tasks {
		if filters.BaseID != "" && t.BaseID != filters.BaseID {
			continue
		}
		if filters.AircraftTail != "" && t.AircraftTail != filters.AircraftTail {
			continue
		}
		if filters.AssignedTo != "" && derefString(t.AssignedTo) != filters.AssignedTo {
			continue
		}
		if filters.Status != "" && t.Status != filters.Status {
			continue
		}
		records = append(records, toTaskRecord(t))
	}
	return records, nil
}

// Update merges the non-nil patch fields into task id and bumps its version.
func (r *TaskRepository) Update(ctx context.Context, id int, patch secondary.TaskPatch, expectedVersion int) (*secondary.TaskRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range tasks {
		t := &tasks[i]
		if t.ID != id {
			continue
		}

		current := storedVersion(*t)
		if expectedVersion > 0 && expectedVersion != current {
			return nil, apperr.Conflict("work order #%d was modified (version %d, expected %d)", id, current, expectedVersion)
		}

		if patch.Title != nil {
			t.Title = *patch.Title
		}
		if patch.Details != nil {
			t.Details = *patch.Details
		}
		if patch.AssignedTo != nil {
			t.AssignedTo = nullableString(*patch.AssignedTo)
		}
		if patch.Status != nil {
			t.Status = *patch.Status
		}
		t.Version = current + 1
		t.UpdatedAt = r.now().UTC().Format(timestampLayout)

		if err := r.store.Save(ctx, secondary.CollectionTasks, tasks); err != nil {
			return nil, err
		}
		return toTaskRecord(*t), nil
	}

	return nil, apperr.NotFound("work order #%d not found", id)
}

// storedVersion treats documents written without a version as version 1.
func storedVersion(t models.Task) int {
	if t.Version < 1 {
		return 1
	}
	return t.Version
}

func toTaskRecord(t models.Task) *secondary.TaskRecord {
	return &secondary.TaskRecord{
		ID:           t.ID,
		Title:        t.Title,
		Details:      t.Details,
		AssignedTo:   derefString(t.AssignedTo),
		Status:       t.Status,
		BaseID:       t.BaseID,
		AircraftTail: t.AircraftTail,
		Version:      storedVersion(t),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func toTaskModel(r *secondary.TaskRecord) models.Task {
	return models.Task{
		ID:           r.ID,
		Title:        r.Title,
		Details:      r.Details,
		AssignedTo:   nullableString(r.AssignedTo),
		Status:       r.Status,
		BaseID:       r.BaseID,
		AircraftTail: r.AircraftTail,
		Version:      r.Version,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
