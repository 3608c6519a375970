package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/esys/internal/ports/primary"
)

// TrainingAdapter translates CLI operations to TrainingService calls.
type TrainingAdapter struct {
	service primary.TrainingService
	out     io.Writer
}

// NewTrainingAdapter creates a new TrainingAdapter with the given service.
func NewTrainingAdapter(service primary.TrainingService, out io.Writer) *TrainingAdapter {
	return &TrainingAdapter{service: service, out: out}
}

// Sessions prints all sessions.
func (a *TrainingAdapter) Sessions(ctx context.Context) error {
	sessions, err := a.service.ListSessions(ctx)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Fprintln(a.out, "No training sessions")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-5s %-11s %s\n", "ID", "DATE", "TITLE")
	fmt.Fprintln(a.out, rule)
	for _, s := range sessions {
		fmt.Fprintf(a.out, "%-5d %-11s %s\n", s.ID, s.Date, s.Title)
	}
	fmt.Fprintln(a.out)
	return nil
}

// AddSession creates a session.
func (a *TrainingAdapter) AddSession(ctx context.Context, title, date string) error {
	s, err := a.service.AddSession(ctx, title, date)
	if err != nil {
		return err
	}
	success(a.out, "Created training session #%d: %s on %s", s.ID, s.Title, s.Date)
	return nil
}

// Assign puts a user on a session.
func (a *TrainingAdapter) Assign(ctx context.Context, user string, sessionID int) error {
	resp, err := a.service.AssignUser(ctx, user, sessionID)
	if err != nil {
		return err
	}
	if !resp.Created {
		fmt.Fprintf(a.out, "%s is already assigned to session #%d\n", user, sessionID)
		return nil
	}
	success(a.out, "Assigned %s to session #%d", user, sessionID)
	return nil
}

// SetStatus updates an assignment status.
func (a *TrainingAdapter) SetStatus(ctx context.Context, user string, sessionID int, status string) error {
	if err := a.service.SetAssignmentStatus(ctx, user, sessionID, status); err != nil {
		return err
	}
	success(a.out, "%s session #%d marked %s", user, sessionID, status)
	return nil
}

// Assignments prints assignments, for one user when user is non-empty.
func (a *TrainingAdapter) Assignments(ctx context.Context, user string) error {
	assignments, err := a.service.ListAssignments(ctx, user)
	if err != nil {
		return err
	}
	if len(assignments) == 0 {
		fmt.Fprintln(a.out, "No training assignments")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-12s %-8s %s\n", "USER", "SESSION", "STATUS")
	fmt.Fprintln(a.out, rule)
	for _, as := range assignments {
		fmt.Fprintf(a.out, "%-12s %-8d %s\n", as.User, as.SessionID, colorStatus(as.Status, 0))
	}
	fmt.Fprintln(a.out)
	return nil
}
