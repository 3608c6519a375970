package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/esys/internal/ports/primary"
)

// InventoryAdapter translates CLI operations to InventoryService calls.
type InventoryAdapter struct {
	service primary.InventoryService
	out     io.Writer
}

// NewInventoryAdapter creates a new InventoryAdapter with the given service.
func NewInventoryAdapter(service primary.InventoryService, out io.Writer) *InventoryAdapter {
	return &InventoryAdapter{service: service, out: out}
}

// List prints all stock items.
func (a *InventoryAdapter) List(ctx context.Context) error {
	items, err := a.service.ListItems(ctx)
	if err != nil {
		return err
	}
	a.printTable(items, "No stock items")
	return nil
}

// Low prints items below their minimum.
func (a *InventoryAdapter) Low(ctx context.Context) error {
	items, err := a.service.LowStock(ctx)
	if err != nil {
		return err
	}
	a.printTable(items, "No low stock items")
	return nil
}

// Set inserts or replaces an item.
func (a *InventoryAdapter) Set(ctx context.Context, req primary.UpsertItemRequest) error {
	item, err := a.service.UpsertItem(ctx, req)
	if err != nil {
		return err
	}
	success(a.out, "Saved %s: %s (qty %d, min %d)", item.PartNo, item.Name, item.Qty, item.MinQty)
	return nil
}

// Adjust changes an item quantity by delta.
func (a *InventoryAdapter) Adjust(ctx context.Context, partNo string, delta int) error {
	item, err := a.service.AdjustQty(ctx, partNo, delta)
	if err != nil {
		return err
	}
	success(a.out, "%s quantity now %d", item.PartNo, item.Qty)
	if item.Low {
		fmt.Fprintf(a.out, "  %s below minimum of %d\n", color.New(color.FgYellow).Sprint("!"), item.MinQty)
	}
	return nil
}

// Delete removes an item.
func (a *InventoryAdapter) Delete(ctx context.Context, partNo string) error {
	if err := a.service.DeleteItem(ctx, partNo); err != nil {
		return err
	}
	success(a.out, "Deleted %s", partNo)
	return nil
}

func (a *InventoryAdapter) printTable(items []*primary.StockItem, empty string) {
	if len(items) == 0 {
		fmt.Fprintln(a.out, empty)
		return
	}

	fmt.Fprintf(a.out, "\n%-14s %-6s %-6s %s\n", "PART", "QTY", "MIN", "NAME")
	fmt.Fprintln(a.out, rule)
	for _, item := range items {
		qty := fmt.Sprintf("%-6d", item.Qty)
		if item.Low {
			qty = color.New(color.FgRed).Sprint(qty)
		}
		fmt.Fprintf(a.out, "%-14s %s %-6d %s\n", item.PartNo, qty, item.MinQty, item.Name)
	}
	fmt.Fprintln(a.out)
}
