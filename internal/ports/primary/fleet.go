package primary

import "context"

// FleetService defines the primary port for the airbase/aircraft context resolver.
type FleetService interface {
	// ListAirbases lists all airbases.
	ListAirbases(ctx context.Context) ([]*Airbase, error)

	// GetAirbase retrieves an airbase by id.
	GetAirbase(ctx context.Context, baseID string) (*Airbase, error)

	// AircraftFor lists the aircraft stationed at a base.
	AircraftFor(ctx context.Context, baseID string) ([]*Aircraft, error)

	// FindAircraft retrieves an aircraft by tail.
	FindAircraft(ctx context.Context, tail string) (*Aircraft, error)

	// Validate reports whether tail belongs to baseID.
	Validate(ctx context.Context, baseID, tail string) (bool, error)

	// ResolveContext checks that (baseID, tail) is a usable working context.
	ResolveContext(ctx context.Context, baseID, tail string) error
}

// Airbase represents an airbase at the port boundary.
type Airbase struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Aircraft represents an aircraft at the port boundary.
type Aircraft struct {
	Tail   string `json:"tail"`
	BaseID string `json:"base_id"`
	Model  string `json:"model"`
}
