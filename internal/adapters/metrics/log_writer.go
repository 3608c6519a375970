// Package metrics decorates secondary ports with Prometheus instrumentation.
package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/example/esys/internal/ports/secondary"
)

// LogWriter counts audit entries by entity type and action, and counts
// failed writes, before delegating to the wrapped writer.
type LogWriter struct {
	next     secondary.LogWriter
	entries  *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// NewLogWriter wraps next, registering its collectors on reg.
func NewLogWriter(next secondary.LogWriter, reg prometheus.Registerer) *LogWriter {
	factory := promauto.With(reg)
	return &LogWriter{
		next: next,
		entries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "esys_audit_entries_total",
				Help: "Audit entries written, by entity type and action.",
			},
			[]string{"entity_type", "action"},
		),
		failures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "esys_audit_write_failures_total",
				Help: "Audit entries that could not be written.",
			},
			[]string{"entity_type"},
		),
	}
}

// LogCreate logs a create operation for an entity.
func (w *LogWriter) LogCreate(ctx context.Context, entityType, entityID string) error {
	return w.observe(entityType, "create", w.next.LogCreate(ctx, entityType, entityID))
}

// LogUpdate logs an update operation for an entity field.
func (w *LogWriter) LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error {
	return w.observe(entityType, "update", w.next.LogUpdate(ctx, entityType, entityID, fieldName, oldValue, newValue))
}

// LogDelete logs a delete operation for an entity.
func (w *LogWriter) LogDelete(ctx context.Context, entityType, entityID string) error {
	return w.observe(entityType, "delete", w.next.LogDelete(ctx, entityType, entityID))
}

func (w *LogWriter) observe(entityType, action string, err error) error {
	if err != nil {
		w.failures.WithLabelValues(entityType).Inc()
		return err
	}
	w.entries.WithLabelValues(entityType, action).Inc()
	return nil
}
