package primary

import "context"

// InventoryService defines the primary port for stock management.
type InventoryService interface {
	// UpsertItem inserts or replaces an item by part number.
	UpsertItem(ctx context.Context, req UpsertItemRequest) (*StockItem, error)

	// AdjustQty adds delta to the item quantity, clamping at zero.
	AdjustQty(ctx context.Context, partNo string, delta int) (*StockItem, error)

	// DeleteItem removes an item.
	DeleteItem(ctx context.Context, partNo string) error

	// LowStock lists items whose quantity is below their minimum.
	LowStock(ctx context.Context) ([]*StockItem, error)

	// ListItems lists all items.
	ListItems(ctx context.Context) ([]*StockItem, error)
}

// UpsertItemRequest contains parameters for inserting or replacing an item.
type UpsertItemRequest struct {
	PartNo string
	Name   string
	Qty    int
	MinQty int
}

// StockItem represents an inventory item at the port boundary.
type StockItem struct {
	PartNo string `json:"part_no"`
	Name   string `json:"name"`
	Qty    int    `json:"qty"`
	MinQty int    `json:"min_qty"`
	Low    bool   `json:"low"`
}
