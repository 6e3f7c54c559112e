package fsjson

import (
	"context"
	"time"

	"github.com/lucasmrqs/financial-football/internal/domain/manualstock"
)

const manualStockFile = "manual-stock.json"

type manualStockDoc struct {
	Items     []stockItemDoc `json:"items"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type stockItemDoc struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// ManualStockRepository persists booth giveaway counters.
type ManualStockRepository struct {
	store *Store
}

func NewManualStockRepository(store *Store) *ManualStockRepository {
	return &ManualStockRepository{store: store}
}

func (r *ManualStockRepository) List(_ context.Context) ([]manualstock.Item, error) {
	lock := r.store.lockFor(manualStockFile)
	lock.Lock()
	defer lock.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	items := make([]manualstock.Item, 0, len(doc.Items))
	for _, item := range doc.Items {
		items = append(items, manualstock.Item(item))
	}
	return items, nil
}

func (r *ManualStockRepository) Create(_ context.Context, item manualstock.Item) error {
	lock := r.store.lockFor(manualStockFile)
	lock.Lock()
	defer lock.Unlock()

	doc, err := r.load()
	if err != nil {
		return err
	}

	doc.Items = append(doc.Items, stockItemDoc(item))
	return r.save(doc)
}

func (r *ManualStockRepository) Update(_ context.Context, item manualstock.Item) error {
	lock := r.store.lockFor(manualStockFile)
	lock.Lock()
	defer lock.Unlock()

	doc, err := r.load()
	if err != nil {
		return err
	}

	for i, existing := range doc.Items {
		if existing.ID == item.ID {
			doc.Items[i] = stockItemDoc(item)
			return r.save(doc)
		}
	}
	return manualstock.ErrNotFound
}

func (r *ManualStockRepository) Delete(_ context.Context, id string) error {
	lock := r.store.lockFor(manualStockFile)
	lock.Lock()
	defer lock.Unlock()

	doc, err := r.load()
	if err != nil {
		return err
	}

	for i, existing := range doc.Items {
		if existing.ID == id {
			doc.Items = append(doc.Items[:i], doc.Items[i+1:]...)
			return r.save(doc)
		}
	}
	return manualstock.ErrNotFound
}

func (r *ManualStockRepository) load() (manualStockDoc, error) {
	var doc manualStockDoc
	if _, err := r.store.read(manualStockFile, &doc); err != nil {
		return manualStockDoc{}, err
	}
	return doc, nil
}

func (r *ManualStockRepository) save(doc manualStockDoc) error {
	doc.UpdatedAt = time.Now().UTC()
	return r.store.write(manualStockFile, doc)
}
