package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/esys/internal/ports/primary"
)

// FleetAdapter translates CLI operations to FleetService calls.
type FleetAdapter struct {
	service primary.FleetService
	out     io.Writer
}

// NewFleetAdapter creates a new FleetAdapter with the given service.
func NewFleetAdapter(service primary.FleetService, out io.Writer) *FleetAdapter {
	return &FleetAdapter{service: service, out: out}
}

// Airbases prints every airbase with its aircraft count.
func (a *FleetAdapter) Airbases(ctx context.Context) error {
	bases, err := a.service.ListAirbases(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\n%-6s %-9s %s\n", "BASE", "AIRCRAFT", "NAME")
	fmt.Fprintln(a.out, rule)
	for _, b := range bases {
		aircraft, err := a.service.AircraftFor(ctx, b.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%-6s %-9d %s\n", b.ID, len(aircraft), b.Name)
	}
	fmt.Fprintln(a.out)
	return nil
}

// Aircraft prints the aircraft stationed at baseID.
func (a *FleetAdapter) Aircraft(ctx context.Context, baseID string) error {
	aircraft, err := a.service.AircraftFor(ctx, baseID)
	if err != nil {
		return err
	}
	if len(aircraft) == 0 {
		fmt.Fprintf(a.out, "No aircraft at %s\n", baseID)
		return nil
	}

	fmt.Fprintf(a.out, "\n%-10s %s\n", "TAIL", "MODEL")
	fmt.Fprintln(a.out, rule)
	for _, ac := range aircraft {
		fmt.Fprintf(a.out, "%-10s %s\n", ac.Tail, ac.Model)
	}
	fmt.Fprintln(a.out)
	return nil
}
