package app

import (
	"context"
	"fmt"

	"github.com/example/esys/internal/ports/primary"
	"github.com/example/esys/internal/ports/secondary"
)

// AuditServiceImpl implements the AuditService interface.
type AuditServiceImpl struct {
	auditRepo secondary.AuditRepository
}

// NewAuditService creates a new AuditService with injected dependencies.
func NewAuditService(auditRepo secondary.AuditRepository) *AuditServiceImpl {
	return &AuditServiceImpl{auditRepo: auditRepo}
}

// List returns entries newest first.
func (s *AuditServiceImpl) List(ctx context.Context, filters primary.AuditFilters) ([]*primary.AuditEntry, error) {
	if _, err := requireActor(ctx); err != nil {
		return nil, err
	}

	records, err := s.auditRepo.List(ctx, secondary.AuditFilters{
		EntityType: filters.EntityType,
		EntityID:   filters.EntityID,
		Actor:      filters.Actor,
		Limit:      filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}

	entries := make([]*primary.AuditEntry, len(records))
	for i, r := range records {
		entries[i] = &primary.AuditEntry{
			ID:         r.ID,
			At:         r.At,
			Actor:      r.Actor,
			EntityType: r.EntityType,
			EntityID:   r.EntityID,
			Action:     r.Action,
			Field:      r.Field,
			OldValue:   r.OldValue,
			NewValue:   r.NewValue,
		}
	}
	return entries, nil
}
