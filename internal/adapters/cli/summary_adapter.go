package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/esys/internal/ports/primary"
)

// SummaryAdapter prints the dashboard counters and the audit log.
type SummaryAdapter struct {
	summary primary.SummaryService
	audit   primary.AuditService
	out     io.Writer
}

// NewSummaryAdapter creates a new SummaryAdapter.
func NewSummaryAdapter(summary primary.SummaryService, audit primary.AuditService, out io.Writer) *SummaryAdapter {
	return &SummaryAdapter{summary: summary, audit: audit, out: out}
}

// Summary prints the dashboard cards.
func (a *SummaryAdapter) Summary(ctx context.Context) error {
	s, err := a.summary.Summary(ctx)
	if err != nil {
		return err
	}

	scope := "all bases"
	if s.BaseID != "" {
		scope = fmt.Sprintf("%s / %s", s.BaseID, s.AircraftTail)
	}
	fmt.Fprintf(a.out, "\nSummary for %s\n", scope)
	fmt.Fprintln(a.out, rule)
	fmt.Fprintf(a.out, "Pending work orders:   %d\n", s.PendingOrders)
	fmt.Fprintf(a.out, "Completed work orders: %d\n", s.CompletedOrders)
	low := fmt.Sprintf("%d", s.LowStockItems)
	if s.LowStockItems > 0 {
		low = color.New(color.FgRed).Sprint(low)
	}
	fmt.Fprintf(a.out, "Low stock items:       %s\n", low)
	fmt.Fprintf(a.out, "Training sessions:     %d\n", s.TrainingSessions)
	fmt.Fprintln(a.out)
	return nil
}

// Audit prints audit entries newest first.
func (a *SummaryAdapter) Audit(ctx context.Context, filters primary.AuditFilters) error {
	entries, err := a.audit.List(ctx, filters)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No audit entries")
		return nil
	}

	for _, e := range entries {
		line := fmt.Sprintf("%s %-10s %-7s %s/%s", e.At, e.Actor, e.Action, e.EntityType, e.EntityID)
		if e.Field != "" {
			line += fmt.Sprintf(" %s: %q -> %q", e.Field, e.OldValue, e.NewValue)
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}
