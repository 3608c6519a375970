package app

import (
	"context"
	"log/slog"

	"github.com/example/esys/internal/apperr"
	"github.com/example/esys/internal/ctxutil"
	"github.com/example/esys/internal/ports/secondary"
)

// requireActor returns the authenticated actor or a permission error.
func requireActor(ctx context.Context) (ctxutil.Actor, error) {
	actor, ok := ctxutil.ActorFromContext(ctx)
	if !ok || actor.Username == "" {
		return ctxutil.Actor{}, apperr.PermissionDenied("not logged in")
	}
	return actor, nil
}

// auditLog records audit entries. Failures are logged and never returned.
type auditLog struct {
	writer secondary.LogWriter // optional
	logger *slog.Logger
}

func newAuditLog(writer secondary.LogWriter, logger *slog.Logger) auditLog {
	if logger == nil {
		logger = slog.Default()
	}
	return auditLog{writer: writer, logger: logger}
}

func (a auditLog) created(ctx context.Context, entityType, entityID string) {
	if a.writer == nil {
		return
	}
	if err := a.writer.LogCreate(ctx, entityType, entityID); err != nil {
		a.failed(ctx, entityType, entityID, err)
	}
}

func (a auditLog) updated(ctx context.Context, entityType, entityID, field, oldValue, newValue string) {
	if a.writer == nil || oldValue == newValue {
		return
	}
	if err := a.writer.LogUpdate(ctx, entityType, entityID, field, oldValue, newValue); err != nil {
		a.failed(ctx, entityType, entityID, err)
	}
}

func (a auditLog) deleted(ctx context.Context, entityType, entityID string) {
	if a.writer == nil {
		return
	}
	if err := a.writer.LogDelete(ctx, entityType, entityID); err != nil {
		a.failed(ctx, entityType, entityID, err)
	}
}

func (a auditLog) failed(ctx context.Context, entityType, entityID string, err error) {
	a.logger.WarnContext(ctx, "failed to write audit entry",
		slog.String("entity_type", entityType),
		slog.String("entity_id", entityID),
		slog.String("error", err.Error()))
}
