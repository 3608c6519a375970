package primary

import "context"

// SummaryService defines the primary port for dashboard counters.
type SummaryService interface {
	// Summary computes the counters for the actor's selected context.
	Summary(ctx context.Context) (*Summary, error)
}

// Summary holds the dashboard counters.
type Summary struct {
	BaseID           string `json:"base_id"`
	AircraftTail     string `json:"aircraft_tail"`
	PendingOrders    int    `json:"pending_orders"`
	CompletedOrders  int    `json:"completed_orders"`
	LowStockItems    int    `json:"low_stock_items"`
	TrainingSessions int    `json:"training_sessions"`
}
