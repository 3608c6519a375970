package persistence

import (
	"context"
	"sync"

	"github.com/example/esys/internal/models"
	"github.com/example/esys/internal/ports/secondary"
)

// AuditRepository implements secondary.AuditRepository.
type AuditRepository struct {
	store secondary.CollectionStore
	mu    sync.Mutex
}

// NewAuditRepository creates a new audit repository.
func NewAuditRepository(store secondary.CollectionStore) *AuditRepository {
	return &AuditRepository{store: store}
}

// Append persists an entry at the end of the log.
func (r *AuditRepository) Append(ctx context.Context, entry *secondary.AuditRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var entries []models.AuditEntry
	if err := r.store.Load(ctx, secondary.CollectionAudit, &entries); err != nil {
		return err
	}
	entries = append(entries, models.AuditEntry{
		ID:         entry.ID,
		At:         entry.At,
		Actor:      entry.Actor,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Action:     entry.Action,
		Field:      entry.Field,
		OldValue:   entry.OldValue,
		NewValue:   entry.NewValue,
	})
	return r.store.Save(ctx, secondary.CollectionAudit, entries)
}

// List retrieves entries newest first.
func (r *AuditRepository) List(ctx context.Context, filters secondary.AuditFilters) ([]*secondary.AuditRecord, error) {
	var entries []models.AuditEntry
	if err := r.store.Load(ctx, secondary.CollectionAudit, &entries); err != nil {
		return nil, err
	}

	records := make([]*secondary.AuditRecord, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if filters.EntityType != "" && e.EntityType != filters.EntityType {
			continue
		}
		if filters.EntityID != "" && e.EntityID != filters.EntityID {
			continue
		}
		if filters.Actor != "" && e.Actor != filters.Actor {
			continue
		}
		records = append(records, &secondary.AuditRecord{
			ID:         e.ID,
			At:         e.At,
			Actor:      e.Actor,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			Action:     e.Action,
			Field:      e.Field,
			OldValue:   e.OldValue,
			NewValue:   e.NewValue,
		})
		if filters.Limit > 0 && len(records) >= filters.Limit {
			break
		}
	}
	return records, nil
}
