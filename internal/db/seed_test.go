package db

import (
	"context"
	"testing"

	"github.com/example/esys/internal/core/user"
	"github.com/example/esys/internal/models"
	"github.com/example/esys/internal/ports/secondary"
)

// memStore is an in-memory CollectionStore for seeding tests.
type memStore struct {
	users    []models.User
	airbases []models.Airbase
	aircraft []models.Aircraft
}

func (m *memStore) Load(_ context.Context, name string, dest any) error {
	switch name {
	case secondary.CollectionUsers:
		*dest.(*[]models.User) = append([]models.User(nil), m.users...)
	case secondary.CollectionAirbases:
		*dest.(*[]models.Airbase) = append([]models.Airbase(nil), m.airbases...)
	case secondary.CollectionAircraft:
		*dest.(*[]models.Aircraft) = append([]models.Aircraft(nil), m.aircraft...)
	}
	return nil
}

func (m *memStore) Save(_ context.Context, name string, v any) error {
	switch name {
	case secondary.CollectionUsers:
		m.users = v.([]models.User)
	case secondary.CollectionAirbases:
		m.airbases = v.([]models.Airbase)
	case secondary.CollectionAircraft:
		m.aircraft = v.([]models.Aircraft)
	}
	return nil
}

func TestSeedFixturesEmptyStore(t *testing.T) {
	store := &memStore{}
	res, err := SeedFixtures(context.Background(), store, SeedOptions{AdminPassword: "changeme"})
	if err != nil {
		t.Fatalf("SeedFixtures: %v", err)
	}
	if res.Users != 1 || len(store.users) != 1 {
		t.Fatalf("users seeded = %d, want 1", res.Users)
	}
	admin := store.users[0]
	if admin.Username != user.DefaultAdminUsername || admin.Role != "admin" {
		t.Errorf("admin = %+v", admin)
	}
	if ok, _ := user.CheckPassword(admin.Password, "changeme"); !ok {
		t.Error("admin password not hashed from option")
	}

	var found bool
	for _, a := range store.aircraft {
		if a.Tail == "A6-ABC" && a.BaseID == "OOMS" {
			found = true
		}
	}
	if !found {
		t.Error("expected A6-ABC at OOMS in seed aircraft")
	}
}

func TestSeedFixturesLeavesExistingData(t *testing.T) {
	store := &memStore{
		users:    []models.User{{Username: "someone", Password: "x", Role: "viewer"}},
		airbases: []models.Airbase{{ID: "EGLL", Name: "Heathrow"}},
	}
	res, err := SeedFixtures(context.Background(), store, SeedOptions{AdminPassword: "changeme"})
	if err != nil {
		t.Fatalf("SeedFixtures: %v", err)
	}
	if res.Users != 0 || res.Airbases != 0 {
		t.Errorf("result = %+v, want users/airbases untouched", res)
	}
	if len(store.users) != 1 || store.users[0].Username != "someone" {
		t.Errorf("users overwritten: %+v", store.users)
	}
	if res.Aircraft == 0 {
		t.Error("empty aircraft collection should be seeded")
	}
}

func TestSeedFixturesSampleUsers(t *testing.T) {
	store := &memStore{}
	_, err := SeedFixtures(context.Background(), store, SeedOptions{
		AdminPassword:  "changeme",
		SampleUsers:    true,
		SamplePassword: "pw",
	})
	if err != nil {
		t.Fatalf("SeedFixtures: %v", err)
	}
	if len(store.users) < 3 {
		t.Fatalf("len(users) = %d", len(store.users))
	}
}

func TestSeedFixturesRequiresAdminPassword(t *testing.T) {
	if _, err := SeedFixtures(context.Background(), &memStore{}, SeedOptions{}); err == nil {
		t.Error("expected error without admin password")
	}
}

func TestOpenAppliesSchema(t *testing.T) {
	database, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer database.Close()

	if _, err := database.Exec("INSERT INTO collections (name, body) VALUES ('x', '[]')"); err != nil {
		t.Errorf("collections table missing: %v", err)
	}
}
