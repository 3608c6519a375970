package primary

import "context"

// UserService defines the primary port for authentication and account management.
type UserService interface {
	// Authenticate checks credentials and returns the user.
	Authenticate(ctx context.Context, username, password string) (*User, error)

	// CreateUser registers a new account.
	CreateUser(ctx context.Context, req CreateUserRequest) (*User, error)

	// DeleteUser removes an account.
	DeleteUser(ctx context.Context, username string) error

	// ListUsers lists all accounts.
	ListUsers(ctx context.Context) ([]*User, error)

	// ListUsernamesByRole lists the usernames holding a role.
	ListUsernamesByRole(ctx context.Context, role string) ([]string, error)
}

// CreateUserRequest contains parameters for creating an account.
type CreateUserRequest struct {
	Username string
	Password string
	Role     string
}

// User represents an account at the port boundary. The password never leaves the service.
type User struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}
