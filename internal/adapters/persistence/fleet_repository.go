package persistence

import (
	"context"

	"github.com/example/esys/internal/apperr"
	"github.com/example/esys/internal/models"
	"github.com/example/esys/internal/ports/secondary"
)

// FleetRepository implements secondary.FleetRepository. The registry is
// read-only at runtime.
type FleetRepository struct {
	store secondary.CollectionStore
}

// NewFleetRepository creates a new fleet repository.
func NewFleetRepository(store secondary.CollectionStore) *FleetRepository {
	return &FleetRepository{store: store}
}

// ListAirbases retrieves all airbases.
func (r *FleetRepository) ListAirbases(ctx context.Context) ([]*secondary.AirbaseRecord, error) {
	var bases []models.Airbase
	if err := r.store.Load(ctx, secondary.CollectionAirbases, &bases); err != nil {
		return nil, err
	}
	records := make([]*secondary.AirbaseRecord, len(bases))
	for i, b := range bases {
		records[i] = &secondary.AirbaseRecord{ID: b.ID, Name: b.Name}
	}
	return records, nil
}

// GetAirbase retrieves an airbase by id.
func (r *FleetRepository) GetAirbase(ctx context.Context, id string) (*secondary.AirbaseRecord, error) {
	bases, err := r.ListAirbases(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range bases {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, apperr.NotFound("airbase %s not found", id)
}

// ListAircraft retrieves aircraft, filtered by base when baseID is non-empty.
func (r *FleetRepository) ListAircraft(ctx context.Context, baseID string) ([]*secondary.AircraftRecord, error) {
	var aircraft []models.Aircraft
	if err := r.store.Load(ctx, secondary.CollectionAircraft, &aircraft); err != nil {
		return nil, err
	}
	records := make([]*secondary.AircraftRecord, 0, len(aircraft))
	for _, a := range aircraft {
		if baseID != "" && a.BaseID != baseID {
			continue
		}
		records = append(records, &secondary.AircraftRecord{Tail: a.Tail, BaseID: a.BaseID, Model: a.Model})
	}
	return records, nil
}

// GetAircraft retrieves an aircraft by tail.
func (r *FleetRepository) GetAircraft(ctx context.Context, tail string) (*secondary.AircraftRecord, error) {
	aircraft, err := r.ListAircraft(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, a := range aircraft {
		if a.Tail == tail {
			return a, nil
		}
	}
	return nil, apperr.NotFound("aircraft %s not found", tail)
}
