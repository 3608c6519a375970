package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/example/esys/internal/apperr"
	"github.com/example/esys/internal/core/roles"
	coreuser "github.com/example/esys/internal/core/user"
	"github.com/example/esys/internal/ports/primary"
	"github.com/example/esys/internal/ports/secondary"
)

// UserServiceImpl implements the UserService interface.
type UserServiceImpl struct {
	userRepo secondary.UserRepository
	audit    auditLog
	logger   *slog.Logger
}

// NewUserService creates a new UserService with injected dependencies.
func NewUserService(userRepo secondary.UserRepository, logWriter secondary.LogWriter, logger *slog.Logger) *UserServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userRepo: userRepo,
		audit:    newAuditLog(logWriter, logger),
		logger:   logger,
	}
}

// Authenticate checks credentials. A legacy plaintext password is replaced
// by its hash on the first successful login.
func (s *UserServiceImpl) Authenticate(ctx context.Context, username, password string) (*primary.User, error) {
	record, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("invalid username or password")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	ok, needsUpgrade := coreuser.CheckPassword(record.Password, password)
	if !ok {
		return nil, apperr.NotFound("invalid username or password")
	}
	if !roles.IsValid(record.Role) {
		return nil, apperr.Validation("account %s has unknown role %q", record.Username, record.Role)
	}

	if needsUpgrade {
		if hash, err := coreuser.HashPassword(password); err == nil {
			if err := s.userRepo.UpdatePassword(ctx, record.Username, hash); err != nil {
				s.logger.WarnContext(ctx, "failed to upgrade legacy password",
					slog.String("username", record.Username),
					slog.String("error", err.Error()))
			}
		}
	}

	return &primary.User{Username: record.Username, Role: record.Role}, nil
}

// CreateUser registers a new account with a hashed password.
func (s *UserServiceImpl) CreateUser(ctx context.Context, req primary.CreateUserRequest) (*primary.User, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}

	username := strings.TrimSpace(req.Username)
	taken := false
	if username != "" {
		if taken, err = s.userRepo.Exists(ctx, username); err != nil {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
	}

	guardCtx := coreuser.CreateContext{
		ActorRole:     actor.Role,
		Username:      username,
		Password:      req.Password,
		Role:          req.Role,
		UsernameTaken: taken,
	}
	if result := coreuser.CanCreateUser(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	hash, err := coreuser.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	record := &secondary.UserRecord{Username: username, Password: hash, Role: req.Role}
	if err := s.userRepo.Create(ctx, record); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.audit.created(ctx, secondary.EntityUser, username)
	return &primary.User{Username: record.Username, Role: record.Role}, nil
}

// DeleteUser removes an account. The default administrator is always refused.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, username string) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return err
	}

	exists, err := s.userRepo.Exists(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	guardCtx := coreuser.DeleteContext{
		ActorRole:  actor.Role,
		Username:   username,
		UserExists: exists,
	}
	if result := coreuser.CanDeleteUser(guardCtx); !result.Allowed {
		return result.Error()
	}

	if err := s.userRepo.Delete(ctx, username); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.audit.deleted(ctx, secondary.EntityUser, username)
	return nil
}

// ListUsers lists all accounts.
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]*primary.User, error) {
	if _, err := requireActor(ctx); err != nil {
		return nil, err
	}
	records, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	users := make([]*primary.User, len(records))
	for i, r := range records {
		users[i] = &primary.User{Username: r.Username, Role: r.Role}
	}
	return users, nil
}

// ListUsernamesByRole lists the usernames holding role, in stored order.
func (s *UserServiceImpl) ListUsernamesByRole(ctx context.Context, role string) ([]string, error) {
	users, err := s.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, u := range users {
		if u.Role == role {
			names = append(names, u.Username)
		}
	}
	return names, nil
}
