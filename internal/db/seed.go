package db

import (
	"context"
	"fmt"

	"github.com/example/esys/internal/core/roles"
	"github.com/example/esys/internal/core/user"
	"github.com/example/esys/internal/models"
	"github.com/example/esys/internal/ports/secondary"
)

// SeedOptions controls fixture seeding.
type SeedOptions struct {
	AdminPassword  string
	SampleUsers    bool // also create one account per common role
	SamplePassword string
}

// SeedResult reports which collections were written.
type SeedResult struct {
	Users    int
	Airbases int
	Aircraft int
}

var seedAirbases = []models.Airbase{
	{ID: "OOMS", Name: "Muscat International"},
	{ID: "OOSA", Name: "Salalah"},
	{ID: "OOTH", Name: "Thumrait Air Base"},
}

var seedAircraft = []models.Aircraft{
	{Tail: "A6-ABC", BaseID: "OOMS", Model: "A320"},
	{Tail: "A6-DEF", BaseID: "OOMS", Model: "B737-800"},
	{Tail: "A4O-SLL", BaseID: "OOSA", Model: "ATR 72"},
	{Tail: "A4O-THM", BaseID: "OOTH", Model: "C-130J"},
}

var sampleUsers = []struct{ username, role string }{
	{"eng1", roles.Engineer},
	{"eng2", roles.Engineer},
	{"tech1", roles.Technician},
	{"sup1", roles.Supervisor},
	{"plan1", roles.Planner},
	{"qc1", roles.QualityControl},
	{"insp1", roles.Inspector},
	{"mgr1", roles.Manager},
	{"inv1", roles.InventoryManager},
	{"train1", roles.TrainingCoordinator},
}

// SeedFixtures populates empty collections with the default admin account and
// the airbase/aircraft registry. Non-empty collections are left untouched.
func SeedFixtures(ctx context.Context, store secondary.CollectionStore, opts SeedOptions) (*SeedResult, error) {
	result := &SeedResult{}

	var users []models.User
	if err := store.Load(ctx, secondary.CollectionUsers, &users); err != nil {
		return nil, fmt.Errorf("seed users: %w", err)
	}
	if len(users) == 0 {
		if opts.AdminPassword == "" {
			return nil, fmt.Errorf("seed users: admin password is required")
		}
		hash, err := user.HashPassword(opts.AdminPassword)
		if err != nil {
			return nil, fmt.Errorf("seed users: %w", err)
		}
		users = append(users, models.User{Username: user.DefaultAdminUsername, Password: hash, Role: roles.Admin})

		if opts.SampleUsers {
			sampleHash, err := user.HashPassword(opts.SamplePassword)
			if err != nil {
				return nil, fmt.Errorf("seed users: %w", err)
			}
			for _, u := range sampleUsers {
				users = append(users, models.User{Username: u.username, Password: sampleHash, Role: u.role})
			}
		}

		if err := store.Save(ctx, secondary.CollectionUsers, users); err != nil {
			return nil, fmt.Errorf("seed users: %w", err)
		}
		result.Users = len(users)
	}

	var bases []models.Airbase
	if err := store.Load(ctx, secondary.CollectionAirbases, &bases); err != nil {
		return nil, fmt.Errorf("seed airbases: %w", err)
	}
	if len(bases) == 0 {
		if err := store.Save(ctx, secondary.CollectionAirbases, seedAirbases); err != nil {
			return nil, fmt.Errorf("seed airbases: %w", err)
		}
		result.Airbases = len(seedAirbases)
	}

	var aircraft []models.Aircraft
	if err := store.Load(ctx, secondary.CollectionAircraft, &aircraft); err != nil {
		return nil, fmt.Errorf("seed aircraft: %w", err)
	}
	if len(aircraft) == 0 {
		if err := store.Save(ctx, secondary.CollectionAircraft, seedAircraft); err != nil {
			return nil, fmt.Errorf("seed aircraft: %w", err)
		}
		result.Aircraft = len(seedAircraft)
	}

	return result, nil
}
