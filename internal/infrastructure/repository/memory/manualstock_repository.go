package memory

import (
	"context"
	"sync"

	"github.com/lucasmrqs/financial-football/internal/domain/manualstock"
)

type ManualStockRepository struct {
	mu    sync.RWMutex
	items []manualstock.Item
}

func NewManualStockRepository() *ManualStockRepository {
	return &ManualStockRepository{}
}

func (r *ManualStockRepository) List(_ context.Context) ([]manualstock.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]manualstock.Item(nil), r.items...), nil
}

func (r *ManualStockRepository) Create(_ context.Context, item manualstock.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, item)
	return nil
}

func (r *ManualStockRepository) Update(_ context.Context, item manualstock.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.items {
		if existing.ID == item.ID {
			r.items[i] = item
			return nil
		}
	}
	return manualstock.ErrNotFound
}

func (r *ManualStockRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.items {
		if existing.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return manualstock.ErrNotFound
}
