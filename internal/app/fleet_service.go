package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/esys/internal/apperr"
	corefleet "github.com/example/esys/internal/core/fleet"
	"github.com/example/esys/internal/ports/primary"
	"github.com/example/esys/internal/ports/secondary"
)

// FleetServiceImpl implements the FleetService interface.
type FleetServiceImpl struct {
	fleetRepo secondary.FleetRepository
}

// NewFleetService creates a new FleetService with injected dependencies.
func NewFleetService(fleetRepo secondary.FleetRepository) *FleetServiceImpl {
	return &FleetServiceImpl{fleetRepo: fleetRepo}
}

// ListAirbases lists all airbases.
func (s *FleetServiceImpl) ListAirbases(ctx context.Context) ([]*primary.Airbase, error) {
	records, err := s.fleetRepo.ListAirbases(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list airbases: %w", err)
	}
	bases := make([]*primary.Airbase, len(records))
	for i, r := range records {
		bases[i] = &primary.Airbase{ID: r.ID, Name: r.Name}
	}
	return bases, nil
}

// GetAirbase retrieves an airbase by id.
func (s *FleetServiceImpl) GetAirbase(ctx context.Context, baseID string) (*primary.Airbase, error) {
	r, err := s.fleetRepo.GetAirbase(ctx, baseID)
	if err != nil {
		return nil, err
	}
	return &primary.Airbase{ID: r.ID, Name: r.Name}, nil
}

// AircraftFor lists the aircraft stationed at a base. An unknown base is NotFound.
func (s *FleetServiceImpl) AircraftFor(ctx context.Context, baseID string) ([]*primary.Aircraft, error) {
	if _, err := s.fleetRepo.GetAirbase(ctx, baseID); err != nil {
		return nil, err
	}
	records, err := s.fleetRepo.ListAircraft(ctx, baseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list aircraft: %w", err)
	}
	aircraft := make([]*primary.Aircraft, len(records))
	for i, r := range records {
		aircraft[i] = recordToAircraft(r)
	}
	return aircraft, nil
}

// FindAircraft retrieves an aircraft by tail.
func (s *FleetServiceImpl) FindAircraft(ctx context.Context, tail string) (*primary.Aircraft, error) {
	r, err := s.fleetRepo.GetAircraft(ctx, corefleet.NormalizeTail(tail))
	if err != nil {
		return nil, err
	}
	return recordToAircraft(r), nil
}

// Validate reports whether tail belongs to baseID. Unknown tails are simply false.
func (s *FleetServiceImpl) Validate(ctx context.Context, baseID, tail string) (bool, error) {
	r, err := s.fleetRepo.GetAircraft(ctx, corefleet.NormalizeTail(tail))
	if errors.Is(err, apperr.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return r.BaseID == baseID, nil
}

// ResolveContext checks that (baseID, tail) is a usable working context.
func (s *FleetServiceImpl) ResolveContext(ctx context.Context, baseID, tail string) error {
	return resolveContext(ctx, s.fleetRepo, baseID, tail)
}

// resolveContext looks up a base/tail pair and runs the fleet guard.
func resolveContext(ctx context.Context, fleetRepo secondary.FleetRepository, baseID, tail string) error {
	check := corefleet.ContextCheck{BaseID: baseID, Tail: corefleet.NormalizeTail(tail)}

	if baseID != "" {
		_, err := fleetRepo.GetAirbase(ctx, baseID)
		switch {
		case err == nil:
			check.BaseExists = true
		case !errors.Is(err, apperr.ErrNotFound):
			return fmt.Errorf("failed to look up airbase: %w", err)
		}
	}

	if check.Tail != "" {
		aircraft, err := fleetRepo.GetAircraft(ctx, check.Tail)
		switch {
		case err == nil:
			check.TailExists = true
			check.TailBaseID = aircraft.BaseID
		case !errors.Is(err, apperr.ErrNotFound):
			return fmt.Errorf("failed to look up aircraft: %w", err)
		}
	}

	return corefleet.CanUseContext(check).Error()
}

func recordToAircraft(r *secondary.AircraftRecord) *primary.Aircraft {
	return &primary.Aircraft{Tail: r.Tail, BaseID: r.BaseID, Model: r.Model}
}
