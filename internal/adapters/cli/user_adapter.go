package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/esys/internal/core/roles"
	"github.com/example/esys/internal/ports/primary"
)

// UserAdapter translates CLI operations to UserService calls.
type UserAdapter struct {
	service primary.UserService
	out     io.Writer
}

// NewUserAdapter creates a new UserAdapter with the given service.
func NewUserAdapter(service primary.UserService, out io.Writer) *UserAdapter {
	return &UserAdapter{service: service, out: out}
}

// List prints all accounts.
func (a *UserAdapter) List(ctx context.Context) error {
	users, err := a.service.ListUsers(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\n%-14s %s\n", "USERNAME", "ROLE")
	fmt.Fprintln(a.out, rule)
	for _, u := range users {
		fmt.Fprintf(a.out, "%-14s %s\n", u.Username, roles.DisplayName(u.Role))
	}
	fmt.Fprintln(a.out)
	return nil
}

// Add creates an account.
func (a *UserAdapter) Add(ctx context.Context, req primary.CreateUserRequest) error {
	u, err := a.service.CreateUser(ctx, req)
	if err != nil {
		return err
	}
	success(a.out, "Created user %s (%s)", u.Username, roles.DisplayName(u.Role))
	return nil
}

// Delete removes an account.
func (a *UserAdapter) Delete(ctx context.Context, username string) error {
	if err := a.service.DeleteUser(ctx, username); err != nil {
		return err
	}
	success(a.out, "Deleted user %s", username)
	return nil
}
