package primary

import "context"

// TrainingService defines the primary port for training records.
type TrainingService interface {
	// AddSession creates a training session.
	AddSession(ctx context.Context, title, date string) (*TrainingSession, error)

	// AssignUser puts a user on a session. Assigning twice is a no-op.
	AssignUser(ctx context.Context, user string, sessionID int) (*AssignUserResponse, error)

	// SetAssignmentStatus updates the status of an existing assignment.
	SetAssignmentStatus(ctx context.Context, user string, sessionID int, status string) error

	// ListSessions lists all sessions.
	ListSessions(ctx context.Context) ([]*TrainingSession, error)

	// ListAssignments lists assignments, filtered by user when non-empty.
	ListAssignments(ctx context.Context, user string) ([]*TrainingAssignment, error)
}

// AssignUserResponse reports whether a new assignment was written.
type AssignUserResponse struct {
	Created    bool
	Assignment *TrainingAssignment
}

// TrainingSession represents a session at the port boundary.
type TrainingSession struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date"`
}

// TrainingAssignment represents a user's place on a session.
type TrainingAssignment struct {
	User      string `json:"user"`
	SessionID int    `json:"session_id"`
	Status    string `json:"status"`
}
