package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/example/esys/internal/apperr"
	coreinventory "github.com/example/esys/internal/core/inventory"
	"github.com/example/esys/internal/ports/primary"
	"github.com/example/esys/internal/ports/secondary"
)

// InventoryServiceImpl implements the InventoryService interface.
type InventoryServiceImpl struct {
	stockRepo secondary.StockRepository
	audit     auditLog
}

// NewInventoryService creates a new InventoryService with injected dependencies.
func NewInventoryService(stockRepo secondary.StockRepository, logWriter secondary.LogWriter, logger *slog.Logger) *InventoryServiceImpl {
	return &InventoryServiceImpl{
		stockRepo: stockRepo,
		audit:     newAuditLog(logWriter, logger),
	}
}

// UpsertItem inserts or replaces an item by part number.
func (s *InventoryServiceImpl) UpsertItem(ctx context.Context, req primary.UpsertItemRequest) (*primary.StockItem, error) {
	if _, err := requireActor(ctx); err != nil {
		return nil, err
	}

	guardCtx := coreinventory.UpsertContext{
		PartNo: req.PartNo,
		Name:   req.Name,
		Qty:    req.Qty,
		MinQty: req.MinQty,
	}
	if result := coreinventory.CanUpsertItem(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	partNo := strings.TrimSpace(req.PartNo)
	existing, err := s.stockRepo.Get(ctx, partNo)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up item: %w", err)
	}

	record := &secondary.StockItemRecord{
		PartNo: partNo,
		Name:   strings.TrimSpace(req.Name),
		Qty:    req.Qty,
		MinQty: req.MinQty,
	}
	if err := s.stockRepo.Upsert(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save item: %w", err)
	}

	if existing == nil {
		s.audit.created(ctx, secondary.EntityStock, partNo)
	} else {
		s.audit.updated(ctx, secondary.EntityStock, partNo, "qty", strconv.Itoa(existing.Qty), strconv.Itoa(record.Qty))
		s.audit.updated(ctx, secondary.EntityStock, partNo, "min_qty", strconv.Itoa(existing.MinQty), strconv.Itoa(record.MinQty))
		s.audit.updated(ctx, secondary.EntityStock, partNo, "name", existing.Name, record.Name)
	}

	return recordToStockItem(record), nil
}

// AdjustQty adds delta to the item quantity, clamping at zero.
func (s *InventoryServiceImpl) AdjustQty(ctx context.Context, partNo string, delta int) (*primary.StockItem, error) {
	if _, err := requireActor(ctx); err != nil {
		return nil, err
	}

	var before int
	record, err := s.stockRepo.Modify(ctx, partNo, func(item *secondary.StockItemRecord) {
		before = item.Qty
		item.Qty = coreinventory.ApplyDelta(item.Qty, delta)
	})
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to adjust item: %w", err)
	}

	s.audit.updated(ctx, secondary.EntityStock, partNo, "qty", strconv.Itoa(before), strconv.Itoa(record.Qty))
	return recordToStockItem(record), nil
}

// DeleteItem removes an item.
func (s *InventoryServiceImpl) DeleteItem(ctx context.Context, partNo string) error {
	if _, err := requireActor(ctx); err != nil {
		return err
	}
	if err := s.stockRepo.Delete(ctx, partNo); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete item: %w", err)
	}
	s.audit.deleted(ctx, secondary.EntityStock, partNo)
	return nil
}

// LowStock lists items whose quantity is strictly below their minimum.
func (s *InventoryServiceImpl) LowStock(ctx context.Context) ([]*primary.StockItem, error) {
	items, err := s.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	low := make([]*primary.StockItem, 0, len(items))
	for _, item := range items {
		if item.Low {
			low = append(low, item)
		}
	}
	return low, nil
}

// ListItems lists all items.
func (s *InventoryServiceImpl) ListItems(ctx context.Context) ([]*primary.StockItem, error) {
	if _, err := requireActor(ctx); err != nil {
		return nil, err
	}
	records, err := s.stockRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock: %w", err)
	}
	items := make([]*primary.StockItem, len(records))
	for i, r := range records {
		items[i] = recordToStockItem(r)
	}
	return items, nil
}

func recordToStockItem(r *secondary.StockItemRecord) *primary.StockItem {
	return &primary.StockItem{
		PartNo: r.PartNo,
		Name:   r.Name,
		Qty:    r.Qty,
		MinQty: r.MinQty,
		Low:    coreinventory.IsLow(r.Qty, r.MinQty),
	}
}
