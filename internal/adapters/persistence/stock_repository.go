package persistence

import (
	"context"
	"sync"

	"github.com/example/esys/internal/apperr"
	"github.com/example/esys/internal/models"
	"github.com/example/esys/internal/ports/secondary"
)

// StockRepository implements secondary.StockRepository.
type StockRepository struct {
	store secondary.CollectionStore
	mu    sync.Mutex
}

// NewStockRepository creates a new stock repository.
func NewStockRepository(store secondary.CollectionStore) *StockRepository {
	return &StockRepository{store: store}
}

func (r *StockRepository) load(ctx context.Context) ([]models.StockItem, error) {
	var items []models.StockItem
	if err := r.store.Load(ctx, secondary.CollectionStock, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// List retrieves all items in stored order.
func (r *StockRepository) List(ctx context.Context) ([]*secondary.StockItemRecord, error) {
	items, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]*secondary.StockItemRecord, len(items))
	for i, it := range items {
		records[i] = toStockRecord(it)
	}
	return records, nil
}

// Get retrieves an item by part number.
func (r *StockRepository) Get(ctx context.Context, partNo string) (*secondary.StockItemRecord, error) {
	items, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.PartNo == partNo {
			return toStockRecord(it), nil
		}
	}
	return nil, apperr.NotFound("part %s not found", partNo)
}

// Upsert replaces the item with the same part number in place, or appends it.
func (r *StockRepository) Upsert(ctx context.Context, item *secondary.StockItemRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load(ctx)
	if err != nil {
		return err
	}
	doc := models.StockItem{PartNo: item.PartNo, Name: item.Name, Qty: item.Qty, MinQty: item.MinQty}
	replaced := false
	for i := range items {
		if items[i].PartNo == item.PartNo {
			items[i] = doc
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, doc)
	}
	return r.store.Save(ctx, secondary.CollectionStock, items)
}

// Modify applies fn to the stored item and persists the result.
func (r *StockRepository) Modify(ctx context.Context, partNo string, fn func(*secondary.StockItemRecord)) (*secondary.StockItemRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].PartNo != partNo {
			continue
		}
		rec := toStockRecord(items[i])
		fn(rec)
		items[i] = models.StockItem{PartNo: items[i].PartNo, Name: rec.Name, Qty: rec.Qty, MinQty: rec.MinQty}
		if err := r.store.Save(ctx, secondary.CollectionStock, items); err != nil {
			return nil, err
		}
		return toStockRecord(items[i]), nil
	}
	return nil, apperr.NotFound("part %s not found", partNo)
}

// Delete removes an item.
func (r *StockRepository) Delete(ctx context.Context, partNo string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load(ctx)
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, it := range items {
		if it.PartNo != partNo {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(items) {
		return apperr.NotFound("part %s not found", partNo)
	}
	return r.store.Save(ctx, secondary.CollectionStock, kept)
}

func toStockRecord(it models.StockItem) *secondary.StockItemRecord {
	return &secondary.StockItemRecord{PartNo: it.PartNo, Name: it.Name, Qty: it.Qty, MinQty: it.MinQty}
}
