package app

import (
	"context"
	"fmt"

	coreinventory "github.com/example/esys/internal/core/inventory"
	coreworkorder "github.com/example/esys/internal/core/workorder"
	"github.com/example/esys/internal/ports/primary"
	"github.com/example/esys/internal/ports/secondary"
)

// SummaryServiceImpl implements the SummaryService interface.
type SummaryServiceImpl struct {
	taskRepo     secondary.TaskRepository
	stockRepo    secondary.StockRepository
	trainingRepo secondary.TrainingRepository
}

// NewSummaryService creates a new SummaryService with injected dependencies.
func NewSummaryService(
	taskRepo secondary.TaskRepository,
	stockRepo secondary.StockRepository,
	trainingRepo secondary.TrainingRepository,
) *SummaryServiceImpl {
	return &SummaryServiceImpl{
		taskRepo:     taskRepo,
		stockRepo:    stockRepo,
		trainingRepo: trainingRepo,
	}
}

// Summary computes the dashboard counters. Work orders are counted in the
// actor's selected context, or across all bases when none is selected.
// Stock and training are global.
func (s *SummaryServiceImpl) Summary(ctx context.Context) (*primary.Summary, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.List(ctx, contextFilters(actor))
	if err != nil {
		return nil, fmt.Errorf("failed to list work orders: %w", err)
	}
	items, err := s.stockRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock: %w", err)
	}
	sessions, err := s.trainingRepo.ListSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list training sessions: %w", err)
	}

	summary := &primary.Summary{
		BaseID:           actor.BaseID,
		AircraftTail:     actor.Tail,
		TrainingSessions: len(sessions),
	}
	for _, t := range tasks {
		status := coreworkorder.Status(t.Status)
		switch {
		case coreworkorder.IsOpen(status):
			summary.PendingOrders++
		case status == coreworkorder.StatusCompleted:
			summary.CompletedOrders++
		}
	}
	for _, item := range items {
		if coreinventory.IsLow(item.Qty, item.MinQty) {
			summary.LowStockItems++
		}
	}
	return summary, nil
}
