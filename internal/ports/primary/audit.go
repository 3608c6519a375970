package primary

import "context"

// AuditService defines the primary port for reading the audit log.
type AuditService interface {
	// List returns entries newest first.
	List(ctx context.Context, filters AuditFilters) ([]*AuditEntry, error)
}

// AuditFilters contains filter options for the audit log.
type AuditFilters struct {
	EntityType string
	EntityID   string
	Actor      string
	Limit      int
}

// AuditEntry represents an audit entry at the port boundary.
type AuditEntry struct {
	ID         string `json:"id"`
	At         string `json:"at"`
	Actor      string `json:"actor"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Action     string `json:"action"`
	Field      string `json:"field,omitempty"`
	OldValue   string `json:"old_value,omitempty"`
	NewValue   string `json:"new_value,omitempty"`
}
