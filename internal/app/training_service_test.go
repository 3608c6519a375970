package app

import (
	"errors"
	"testing"

	"github.com/example/esys/internal/apperr"
	"github.com/example/esys/internal/core/roles"
)

func newTestTrainingService() (*TrainingServiceImpl, *mockTrainingRepository, *mockLogWriter) {
	trainingRepo := newMockTrainingRepository()
	logWriter := &mockLogWriter{}
	return NewTrainingService(trainingRepo, logWriter, nil), trainingRepo, logWriter
}

func TestAssignUser_Idempotent(t *testing.T) {
	service, trainingRepo, logWriter := newTestTrainingService()
	ctx := asActor("train1", roles.TrainingCoordinator, "", "")

	session, err := service.AddSession(ctx, "Human factors", "2026-11-02")
	if err != nil {
		t.Fatalf("AddSession: %v", err)
	}
	if session.ID != 1 {
		t.Fatalf("expected session id 1, got %d", session.ID)
	}

	first, err := service.AssignUser(ctx, "eng1", session.ID)
	if err != nil {
		t.Fatalf("first AssignUser: %v", err)
	}
	second, err := service.AssignUser(ctx, "eng1", session.ID)
	if err != nil {
		t.Fatalf("second AssignUser: %v", err)
	}
	if !first.Created || second.Created {
		t.Errorf("expected created=true then false, got %v then %v", first.Created, second.Created)
	}
	if first.Assignment.Status != "scheduled" {
		t.Errorf("expected scheduled, got %s", first.Assignment.Status)
	}
	if len(trainingRepo.assignments) != 1 {
		t.Errorf("expected 1 assignment, got %d", len(trainingRepo.assignments))
	}
	// session create + first assignment only
	if len(logWriter.ops) != 2 {
		t.Errorf("expected 2 audit entries, got %+v", logWriter.ops)
	}
}

func TestAssignUser_UnknownSession(t *testing.T) {
	service, trainingRepo, _ := newTestTrainingService()

	_, err := service.AssignUser(asActor("train1", roles.TrainingCoordinator, "", ""), "eng1", 7)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if trainingRepo.addCalls != 0 {
		t.Error("expected no write for unknown session")
	}
}

func TestAddSession_Validation(t *testing.T) {
	service, _, _ := newTestTrainingService()
	ctx := asActor("train1", roles.TrainingCoordinator, "", "")

	if _, err := service.AddSession(ctx, "", "2026-11-02"); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("blank title: expected Validation, got %v", err)
	}
	if _, err := service.AddSession(ctx, "Fire drill", "02/11/2026"); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("bad date: expected Validation, got %v", err)
	}
}

func TestSetAssignmentStatus(t *testing.T) {
	service, trainingRepo, logWriter := newTestTrainingService()
	ctx := asActor("train1", roles.TrainingCoordinator, "", "")

	session, _ := service.AddSession(ctx, "Human factors", "2026-11-02")
	if _, err := service.AssignUser(ctx, "eng1", session.ID); err != nil {
		t.Fatalf("AssignUser: %v", err)
	}

	if err := service.SetAssignmentStatus(ctx, "eng1", session.ID, "completed"); err != nil {
		t.Fatalf("SetAssignmentStatus: %v", err)
	}
	if trainingRepo.assignments[0].Status != "completed" {
		t.Errorf("expected completed, got %s", trainingRepo.assignments[0].Status)
	}
	last := logWriter.ops[len(logWriter.ops)-1]
	if last.field != "status" || last.oldValue != "scheduled" || last.newValue != "completed" || last.entityID != "eng1/1" {
		t.Errorf("unexpected audit entry: %+v", last)
	}

	if _, err := service.AssignUser(ctx, "eng3 ", session.ID); err != nil {
		t.Fatalf("AssignUser with padded name: %v", err)
	}
	if err := service.SetAssignmentStatus(ctx, " eng3 ", session.ID, "missed"); err != nil {
		t.Errorf("SetAssignmentStatus with padded name: %v", err)
	}
	if trainingRepo.assignments[1].User != "eng3" || trainingRepo.assignments[1].Status != "missed" {
		t.Errorf("padded assignment = %+v, want eng3 missed", trainingRepo.assignments[1])
	}

	if err := service.SetAssignmentStatus(ctx, "eng2", session.ID, "completed"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("missing pair: expected NotFound, got %v", err)
	}
	if err := service.SetAssignmentStatus(ctx, "eng1", session.ID, "passed"); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("bad status: expected Validation, got %v", err)
	}

	assignments, err := service.ListAssignments(ctx, "eng1")
	if err != nil || len(assignments) != 1 {
		t.Errorf("ListAssignments = %v, %v", assignments, err)
	}
}
