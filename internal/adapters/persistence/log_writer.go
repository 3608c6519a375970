package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/example/esys/internal/ctxutil"
	"github.com/example/esys/internal/ports/secondary"
)

// LogWriterAdapter implements secondary.LogWriter on an AuditRepository.
type LogWriterAdapter struct {
	auditRepo secondary.AuditRepository
	now       func() time.Time
	newID     func() string
}

// NewLogWriterAdapter creates a new LogWriterAdapter.
func NewLogWriterAdapter(auditRepo secondary.AuditRepository) *LogWriterAdapter {
	return &LogWriterAdapter{
		auditRepo: auditRepo,
		now:       time.Now,
		newID:     func() string { return uuid.NewString() },
	}
}

// LogCreate logs a create operation for an entity.
func (w *LogWriterAdapter) LogCreate(ctx context.Context, entityType, entityID string) error {
	return w.writeLog(ctx, entityType, entityID, "create", "", "", "")
}

// LogUpdate logs an update operation for an entity field.
func (w *LogWriterAdapter) LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error {
	return w.writeLog(ctx, entityType, entityID, "update", fieldName, oldValue, newValue)
}

// LogDelete logs a delete operation for an entity.
func (w *LogWriterAdapter) LogDelete(ctx context.Context, entityType, entityID string) error {
	return w.writeLog(ctx, entityType, entityID, "delete", "", "", "")
}

func (w *LogWriterAdapter) writeLog(ctx context.Context, entityType, entityID, action, fieldName, oldValue, newValue string) error {
	record := &secondary.AuditRecord{
		ID:         w.newID(),
		At:         w.now().UTC().Format(timestampLayout),
		Actor:      ctxutil.ActorID(ctx),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Field:      fieldName,
		OldValue:   oldValue,
		NewValue:   newValue,
	}
	return w.auditRepo.Append(ctx, record)
}
