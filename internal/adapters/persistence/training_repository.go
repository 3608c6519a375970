package persistence

import (
	"context"
	"sync"

	"github.com/example/esys/internal/apperr"
	"github.com/example/esys/internal/models"
	"github.com/example/esys/internal/ports/secondary"
)

// TrainingRepository implements secondary.TrainingRepository over the single
// training document holding sessions and assignments.
type TrainingRepository struct {
	store secondary.CollectionStore
	mu    sync.Mutex
}

// NewTrainingRepository creates a new training repository.
func NewTrainingRepository(store secondary.CollectionStore) *TrainingRepository {
	return &TrainingRepository{store: store}
}

func (r *TrainingRepository) load(ctx context.Context) (*models.Training, error) {
	doc := &models.Training{}
	if err := r.store.Load(ctx, secondary.CollectionTraining, doc); err != nil {
		return nil, err
	}
	if doc.Sessions == nil {
		doc.Sessions = []models.TrainingSession{}
	}
	if doc.Assignments == nil {
		doc.Assignments = []models.TrainingAssignment{}
	}
	return doc, nil
}

// ListSessions retrieves all sessions.
func (r *TrainingRepository) ListSessions(ctx context.Context) ([]*secondary.TrainingSessionRecord, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]*secondary.TrainingSessionRecord, len(doc.Sessions))
	for i, s := range doc.Sessions {
		records[i] = &secondary.TrainingSessionRecord{ID: s.ID, Title: s.Title, Date: s.Date}
	}
	return records, nil
}

// GetSession retrieves a session by id.
func (r *TrainingRepository) GetSession(ctx context.Context, id int) (*secondary.TrainingSessionRecord, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range doc.Sessions {
		if s.ID == id {
			return &secondary.TrainingSessionRecord{ID: s.ID, Title: s.Title, Date: s.Date}, nil
		}
	}
	return nil, apperr.NotFound("training session %d not found", id)
}

// CreateSession assigns the next id and persists the session.
func (r *TrainingRepository) CreateSession(ctx context.Context, session *secondary.TrainingSessionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return err
	}
	session.ID = models.NextSessionID(doc.Sessions)
	doc.Sessions = append(doc.Sessions, models.TrainingSession{ID: session.ID, Title: session.Title, Date: session.Date})
	return r.store.Save(ctx, secondary.CollectionTraining, doc)
}

// ListAssignments retrieves assignments, filtered by user when non-empty.
func (r *TrainingRepository) ListAssignments(ctx context.Context, user string) ([]*secondary.TrainingAssignmentRecord, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]*secondary.TrainingAssignmentRecord, 0, len(doc.Assignments))
	for _, a := range doc.Assignments {
		if user != "" && a.User != user {
			continue
		}
		records = append(records, &secondary.TrainingAssignmentRecord{User: a.User, SessionID: a.SessionID, Status: a.Status})
	}
	return records, nil
}

// AddAssignment appends the assignment unless the (user, session_id) pair exists.
func (r *TrainingRepository) AddAssignment(ctx context.Context, assignment *secondary.TrainingAssignmentRecord) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	for _, a := range doc.Assignments {
		if a.User == assignment.User && a.SessionID == assignment.SessionID {
			assignment.Status = a.Status
			return false, nil
		}
	}
	doc.Assignments = append(doc.Assignments, models.TrainingAssignment{
		User:      assignment.User,
		SessionID: assignment.SessionID,
		Status:    assignment.Status,
	})
	if err := r.store.Save(ctx, secondary.CollectionTraining, doc); err != nil {
		return false, err
	}
	return true, nil
}

// SetAssignmentStatus updates the status of an existing assignment.
func (r *TrainingRepository) SetAssignmentStatus(ctx context.Context, user string, sessionID int, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range doc.Assignments {
		a := &doc.Assignments[i]
		if a.User == user && a.SessionID == sessionID {
			a.Status = status
			return r.store.Save(ctx, secondary.CollectionTraining, doc)
		}
	}
	return apperr.NotFound("%s is not assigned to session %d", user, sessionID)
}
