package app

import (
	"errors"
	"testing"

	"github.com/example/esys/internal/apperr"
	"github.com/example/esys/internal/core/roles"
	"github.com/example/esys/internal/ports/primary"
	"github.com/example/esys/internal/ports/secondary"
)

func newTestInventoryService(items ...*secondary.StockItemRecord) (*InventoryServiceImpl, *mockStockRepository, *mockLogWriter) {
	stockRepo := newMockStockRepository(items...)
	logWriter := &mockLogWriter{}
	return NewInventoryService(stockRepo, logWriter, nil), stockRepo, logWriter
}

func TestAdjustQty_ClampsAtZero(t *testing.T) {
	service, stockRepo, logWriter := newTestInventoryService(
		&secondary.StockItemRecord{PartNo: "BRK-1", Name: "Brake pad", Qty: 2, MinQty: 1},
	)
	ctx := asActor("inv1", roles.InventoryManager, "", "")

	item, err := service.AdjustQty(ctx, "BRK-1", -10)
	if err != nil {
		t.Fatalf("AdjustQty: %v", err)
	}
	if item.Qty != 0 || stockRepo.items[0].Qty != 0 {
		t.Errorf("expected qty 0, got %d (stored %d)", item.Qty, stockRepo.items[0].Qty)
	}
	if !item.Low {
		t.Error("expected item to be low")
	}
	want := loggedOp{action: "update", entityType: secondary.EntityStock, entityID: "BRK-1", field: "qty", oldValue: "2", newValue: "0"}
	if len(logWriter.ops) != 1 || logWriter.ops[0] != want {
		t.Errorf("unexpected audit: %+v", logWriter.ops)
	}

	if _, err := service.AdjustQty(ctx, "NOPE", 1); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("missing part: expected NotFound, got %v", err)
	}
}

func TestLowStock_StrictlyBelowMinimum(t *testing.T) {
	service, _, _ := newTestInventoryService(
		&secondary.StockItemRecord{PartNo: "A", Name: "at min", Qty: 5, MinQty: 5},
		&secondary.StockItemRecord{PartNo: "B", Name: "below", Qty: 4, MinQty: 5},
		&secondary.StockItemRecord{PartNo: "C", Name: "above", Qty: 9, MinQty: 5},
		&secondary.StockItemRecord{PartNo: "D", Name: "zero min", Qty: 0, MinQty: 0},
	)

	low, err := service.LowStock(asActor("inv1", roles.InventoryManager, "", ""))
	if err != nil {
		t.Fatalf("LowStock: %v", err)
	}
	if len(low) != 1 || low[0].PartNo != "B" {
		t.Errorf("expected only B, got %+v", low)
	}
}

func TestUpsertItem(t *testing.T) {
	service, stockRepo, logWriter := newTestInventoryService()
	ctx := asActor("inv1", roles.InventoryManager, "", "")

	if _, err := service.UpsertItem(ctx, primary.UpsertItemRequest{PartNo: "HYD-7", Name: "Seal kit", Qty: 3, MinQty: 2}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	item, err := service.UpsertItem(ctx, primary.UpsertItemRequest{PartNo: "HYD-7", Name: "Seal kit", Qty: 1, MinQty: 2})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if len(stockRepo.items) != 1 {
		t.Fatalf("expected replace in place, got %d items", len(stockRepo.items))
	}
	if !item.Low || item.Qty != 1 {
		t.Errorf("unexpected item: %+v", item)
	}
	if len(logWriter.ops) != 2 || logWriter.ops[0].action != "create" || logWriter.ops[1].field != "qty" {
		t.Errorf("unexpected audit: %+v", logWriter.ops)
	}

	if _, err := service.UpsertItem(ctx, primary.UpsertItemRequest{PartNo: "X", Name: "Bad", Qty: -1}); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("negative qty: expected Validation, got %v", err)
	}
	if _, err := service.UpsertItem(ctx, primary.UpsertItemRequest{Name: "No part"}); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("blank part: expected Validation, got %v", err)
	}
}

func TestDeleteItem(t *testing.T) {
	service, stockRepo, _ := newTestInventoryService(
		&secondary.StockItemRecord{PartNo: "A", Name: "a", Qty: 1, MinQty: 0},
	)
	ctx := asActor("inv1", roles.InventoryManager, "", "")

	if err := service.DeleteItem(ctx, "A"); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	if len(stockRepo.items) != 0 {
		t.Error("expected item removed")
	}
	if err := service.DeleteItem(ctx, "A"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected NotFound, got %v", err)
	}
}
