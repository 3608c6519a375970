// Package user holds the pure rules for account management.
package user

import (
	"strings"

	"github.com/example/esys/internal/apperr"
	"github.com/example/esys/internal/core/guard"
	"github.com/example/esys/internal/core/roles"
)

// DefaultAdminUsername is the seeded administrator account. It can never be deleted.
const DefaultAdminUsername = "admin1"

// CreateContext provides context for user creation guards.
type CreateContext struct {
	ActorRole     string
	Username      string
	Password      string
	Role          string
	UsernameTaken bool
}

// DeleteContext provides context for user deletion guards.
type DeleteContext struct {
	ActorRole  string
	Username   string
	UserExists bool
}

// CanManageUsers reports whether role may create or delete accounts.
func CanManageUsers(role string) bool {
	return roles.CapabilitiesFor(role).CanManageUsers
}

// CanCreateUser evaluates whether an account can be created.
// Rules:
// - Actor role must carry can_manage_users
// - Username and password are required
// - Role must be one of the predefined roles
// - Username must be unused
func CanCreateUser(ctx CreateContext) guard.Result {
	if !CanManageUsers(ctx.ActorRole) {
		return guard.Deny(apperr.KindPermissionDenied, "role %s cannot manage users", ctx.ActorRole)
	}
	if strings.TrimSpace(ctx.Username) == "" || ctx.Password == "" {
		return guard.Deny(apperr.KindValidation, "username and password are required")
	}
	if !roles.IsValid(ctx.Role) {
		return guard.Deny(apperr.KindValidation, "unknown role %q", ctx.Role)
	}
	if ctx.UsernameTaken {
		return guard.Deny(apperr.KindConflict, "username %s already exists", ctx.Username)
	}
	return guard.Allow()
}

// CanDeleteUser evaluates whether an account can be removed.
// The default administrator is refused before any other check.
func CanDeleteUser(ctx DeleteContext) guard.Result {
	if ctx.Username == DefaultAdminUsername {
		return guard.Deny(apperr.KindPermissionDenied, "cannot delete the default admin %s", DefaultAdminUsername)
	}
	if !CanManageUsers(ctx.ActorRole) {
		return guard.Deny(apperr.KindPermissionDenied, "role %s cannot manage users", ctx.ActorRole)
	}
	if !ctx.UserExists {
		return guard.Deny(apperr.KindNotFound, "user %s not found", ctx.Username)
	}
	return guard.Allow()
}
