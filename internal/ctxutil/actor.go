// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package has no internal dependencies to avoid import cycles.
package ctxutil

import "context"

// ActorKey is the context key for the acting user.
// Exported so it can be used consistently across packages.
type ActorKey struct{}

// Actor is the authenticated user and the base/aircraft they selected.
type Actor struct {
	Username string
	Role     string
	BaseID   string
	Tail     string
}

// HasContext reports whether a base/aircraft pair has been selected.
func (a Actor) HasContext() bool {
	return a.BaseID != "" && a.Tail != ""
}

// WithActor returns a context with the actor embedded.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, ActorKey{}, actor)
}

// ActorFromContext returns the actor from context and whether one was set.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(ActorKey{}).(Actor)
	return a, ok
}

// ActorID returns the acting username, or "system" when no actor is set.
func ActorID(ctx context.Context) string {
	if a, ok := ActorFromContext(ctx); ok && a.Username != "" {
		return a.Username
	}
	return "system"
}
