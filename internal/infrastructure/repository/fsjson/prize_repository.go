package fsjson

import (
	"context"
	"time"

	"github.com/lucasmrqs/financial-football/internal/domain/prize"
)

const prizesFile = "stock.json"

type prizesDoc struct {
	Prizes    []prizeDoc `json:"prizes"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type prizeDoc struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
	Threshold int    `json:"threshold"`
}

// PrizeRepository keeps the prize catalog and stock counts in a single
// JSON document.
type PrizeRepository struct {
	store *Store
	seed  []prize.Prize
}

// NewPrizeRepository returns a repository backed by store. seed is
// written on first access when no document exists yet.
func NewPrizeRepository(store *Store, seed []prize.Prize) *PrizeRepository {
	return &PrizeRepository{store: store, seed: seed}
}

func (r *PrizeRepository) List(_ context.Context) ([]prize.Prize, time.Time, error) {
	lock := r.store.lockFor(prizesFile)
	lock.Lock()
	defer lock.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, time.Time{}, err
	}

	prizes := make([]prize.Prize, 0, len(doc.Prizes))
	for _, p := range doc.Prizes {
		prizes = append(prizes, prize.Prize(p))
	}
	return prizes, doc.UpdatedAt, nil
}

func (r *PrizeRepository) Create(_ context.Context, p prize.Prize) error {
	lock := r.store.lockFor(prizesFile)
	lock.Lock()
	defer lock.Unlock()

	doc, err := r.load()
	if err != nil {
		return err
	}

	for _, existing := range doc.Prizes {
		if existing.ID == p.ID {
			return prize.ErrDuplicateID
		}
	}

	doc.Prizes = append(doc.Prizes, prizeDoc(p))
	return r.save(doc)
}

func (r *PrizeRepository) Update(_ context.Context, p prize.Prize) error {
	lock := r.store.lockFor(prizesFile)
	lock.Lock()
	defer lock.Unlock()

	doc, err := r.load()
	if err != nil {
		return err
	}

	for i, existing := range doc.Prizes {
		if existing.ID == p.ID {
			doc.Prizes[i] = prizeDoc(p)
			return r.save(doc)
		}
	}
	return prize.ErrNotFound
}

func (r *PrizeRepository) Delete(_ context.Context, id string) error {
	lock := r.store.lockFor(prizesFile)
	lock.Lock()
	defer lock.Unlock()

	doc, err := r.load()
	if err != nil {
		return err
	}

	for i, existing := range doc.Prizes {
		if existing.ID == id {
			doc.Prizes = append(doc.Prizes[:i], doc.Prizes[i+1:]...)
			return r.save(doc)
		}
	}
	return prize.ErrNotFound
}

func (r *PrizeRepository) load() (prizesDoc, error) {
	var doc prizesDoc
	ok, err := r.store.read(prizesFile, &doc)
	if err != nil {
		return prizesDoc{}, err
	}
	if !ok {
		for _, p := range r.seed {
			doc.Prizes = append(doc.Prizes, prizeDoc(p))
		}
	}
	return doc, nil
}

func (r *PrizeRepository) save(doc prizesDoc) error {
	doc.UpdatedAt = time.Now().UTC()
	return r.store.write(prizesFile, doc)
}
