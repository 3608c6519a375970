package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/example/esys/internal/apperr"
	coretraining "github.com/example/esys/internal/core/training"
	"github.com/example/esys/internal/ports/primary"
	"github.com/example/esys/internal/ports/secondary"
)

// TrainingServiceImpl implements the TrainingService interface.
type TrainingServiceImpl struct {
	trainingRepo secondary.TrainingRepository
	audit        auditLog
}

// NewTrainingService creates a new TrainingService with injected dependencies.
func NewTrainingService(trainingRepo secondary.TrainingRepository, logWriter secondary.LogWriter, logger *slog.Logger) *TrainingServiceImpl {
	return &TrainingServiceImpl{
		trainingRepo: trainingRepo,
		audit:        newAuditLog(logWriter, logger),
	}
}

// AddSession creates a training session.
func (s *TrainingServiceImpl) AddSession(ctx context.Context, title, date string) (*primary.TrainingSession, error) {
	if _, err := requireActor(ctx); err != nil {
		return nil, err
	}

	guardCtx := coretraining.SessionContext{Title: title, Date: date}
	if result := coretraining.CanAddSession(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	record := &secondary.TrainingSessionRecord{Title: strings.TrimSpace(title), Date: date}
	if err := s.trainingRepo.CreateSession(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create training session: %w", err)
	}

	s.audit.created(ctx, secondary.EntitySession, strconv.Itoa(record.ID))
	return &primary.TrainingSession{ID: record.ID, Title: record.Title, Date: record.Date}, nil
}

// AssignUser puts a user on a session with status scheduled.
// Assigning the same pair again succeeds without writing.
func (s *TrainingServiceImpl) AssignUser(ctx context.Context, user string, sessionID int) (*primary.AssignUserResponse, error) {
	if _, err := requireActor(ctx); err != nil {
		return nil, err
	}

	_, err := s.trainingRepo.GetSession(ctx, sessionID)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up training session: %w", err)
	}

	guardCtx := coretraining.AssignContext{
		User:          strings.TrimSpace(user),
		SessionID:     sessionID,
		SessionExists: err == nil,
	}
	if result := coretraining.CanAssignUser(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	record := &secondary.TrainingAssignmentRecord{
		User:      guardCtx.User,
		SessionID: sessionID,
		Status:    coretraining.StatusScheduled,
	}
	created, err := s.trainingRepo.AddAssignment(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to assign training: %w", err)
	}
	if created {
		s.audit.created(ctx, secondary.EntityTraining, assignmentID(record.User, sessionID))
	}

	return &primary.AssignUserResponse{
		Created:    created,
		Assignment: recordToAssignment(record),
	}, nil
}

// SetAssignmentStatus updates the status of an existing assignment.
func (s *TrainingServiceImpl) SetAssignmentStatus(ctx context.Context, user string, sessionID int, status string) error {
	if _, err := requireActor(ctx); err != nil {
		return err
	}

	user = strings.TrimSpace(user)
	assignments, err := s.trainingRepo.ListAssignments(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to list training assignments: %w", err)
	}
	var current *secondary.TrainingAssignmentRecord
	for _, a := range assignments {
		if a.SessionID == sessionID {
			current = a
			break
		}
	}

	guardCtx := coretraining.StatusContext{
		User:             user,
		SessionID:        sessionID,
		Status:           status,
		AssignmentExists: current != nil,
	}
	if result := coretraining.CanSetStatus(guardCtx); !result.Allowed {
		return result.Error()
	}

	if err := s.trainingRepo.SetAssignmentStatus(ctx, user, sessionID, status); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to update training assignment: %w", err)
	}

	s.audit.updated(ctx, secondary.EntityTraining, assignmentID(user, sessionID), "status", current.Status, status)
	return nil
}

// ListSessions lists all sessions.
func (s *TrainingServiceImpl) ListSessions(ctx context.Context) ([]*primary.TrainingSession, error) {
	if _, err := requireActor(ctx); err != nil {
		return nil, err
	}
	records, err := s.trainingRepo.ListSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list training sessions: %w", err)
	}
	sessions := make([]*primary.TrainingSession, len(records))
	for i, r := range records {
		sessions[i] = &primary.TrainingSession{ID: r.ID, Title: r.Title, Date: r.Date}
	}
	return sessions, nil
}

// ListAssignments lists assignments, filtered by user when non-empty.
func (s *TrainingServiceImpl) ListAssignments(ctx context.Context, user string) ([]*primary.TrainingAssignment, error) {
	if _, err := requireActor(ctx); err != nil {
		return nil, err
	}
	records, err := s.trainingRepo.ListAssignments(ctx, strings.TrimSpace(user))
	if err != nil {
		return nil, fmt.Errorf("failed to list training assignments: %w", err)
	}
	assignments := make([]*primary.TrainingAssignment, len(records))
	for i, r := range records {
		assignments[i] = recordToAssignment(r)
	}
	return assignments, nil
}

func assignmentID(user string, sessionID int) string {
	return fmt.Sprintf("%s/%d", user, sessionID)
}

func recordToAssignment(r *secondary.TrainingAssignmentRecord) *primary.TrainingAssignment {
	return &primary.TrainingAssignment{User: r.User, SessionID: r.SessionID, Status: r.Status}
}
