package ctxutil

import (
	"context"
	"testing"
)

func TestActorRoundTrip(t *testing.T) {
	ctx := context.Background()
	if _, ok := ActorFromContext(ctx); ok {
		t.Fatal("empty context should carry no actor")
	}
	if got := ActorID(ctx); got != "system" {
		t.Errorf("ActorID(empty) = %q, want system", got)
	}

	ctx = WithActor(ctx, Actor{Username: "eng1", Role: "engineer", BaseID: "OOMS", Tail: "A6-ABC"})
	a, ok := ActorFromContext(ctx)
	if !ok {
		t.Fatal("actor not found")
	}
	if a.Username != "eng1" || a.Role != "engineer" || !a.HasContext() {
		t.Errorf("actor = %+v", a)
	}
	if got := ActorID(ctx); got != "eng1" {
		t.Errorf("ActorID = %q", got)
	}
}

func TestHasContextRequiresBoth(t *testing.T) {
	if (Actor{BaseID: "OOMS"}).HasContext() {
		t.Error("base alone should not count as a context")
	}
}
