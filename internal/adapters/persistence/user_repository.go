package persistence

import (
	"context"
	"sync"

	"github.com/example/esys/internal/apperr"
	"github.com/example/esys/internal/models"
	"github.com/example/esys/internal/ports/secondary"
)

// UserRepository implements secondary.UserRepository.
type UserRepository struct {
	store secondary.CollectionStore
	mu    sync.Mutex
}

// NewUserRepository creates a new user repository.
func NewUserRepository(store secondary.CollectionStore) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) load(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.store.Load(ctx, secondary.CollectionUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetByUsername retrieves a user by name.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*secondary.UserRecord, error) {
	users, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Username == username {
			return toUserRecord(u), nil
		}
	}
	return nil, apperr.NotFound("user %s not found", username)
}

// List retrieves all users in stored order.
func (r *UserRepository) List(ctx context.Context) ([]*secondary.UserRecord, error) {
	users, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]*secondary.UserRecord, len(users))
	for i, u := range users {
		records[i] = toUserRecord(u)
	}
	return records, nil
}

// Create appends a new user. Duplicate usernames are a conflict.
func (r *UserRepository) Create(ctx context.Context, user *secondary.UserRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.Username == user.Username {
			return apperr.Conflict("username %s already exists", user.Username)
		}
	}
	users = append(users, models.User{Username: user.Username, Password: user.Password, Role: user.Role})
	return r.store.Save(ctx, secondary.CollectionUsers, users)
}

// Delete removes a user.
func (r *UserRepository) Delete(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load(ctx)
	if err != nil {
		return err
	}
	kept := users[:0]
	for _, u := range users {
		if u.Username != username {
			kept = append(kept, u)
		}
	}
	if len(kept) == len(users) {
		return apperr.NotFound("user %s not found", username)
	}
	return r.store.Save(ctx, secondary.CollectionUsers, kept)
}

// UpdatePassword replaces the stored password value.
func (r *UserRepository) UpdatePassword(ctx context.Context, username, password string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].Username == username {
			users[i].Password = password
			return r.store.Save(ctx, secondary.CollectionUsers, users)
		}
	}
	return apperr.NotFound("user %s not found", username)
}

// Exists reports whether username is registered.
func (r *UserRepository) Exists(ctx context.Context, username string) (bool, error) {
	users, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	for _, u := range users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func toUserRecord(u models.User) *secondary.UserRecord {
	return &secondary.UserRecord{Username: u.Username, Password: u.Password, Role: u.Role}
}
