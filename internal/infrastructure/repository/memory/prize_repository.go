package memory

import (
	"context"
	"sync"
	"time"

	"github.com/lucasmrqs/financial-football/internal/domain/prize"
)

type PrizeRepository struct {
	mu        sync.RWMutex
	items     []prize.Prize
	updatedAt time.Time
}

func NewPrizeRepository(seed []prize.Prize) *PrizeRepository {
	return &PrizeRepository{
		items:     append([]prize.Prize(nil), seed...),
		updatedAt: time.Now().UTC(),
	}
}

func (r *PrizeRepository) List(_ context.Context) ([]prize.Prize, time.Time, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]prize.Prize(nil), r.items...), r.updatedAt, nil
}

func (r *PrizeRepository) Create(_ context.Context, p prize.Prize) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.ID == p.ID {
			return prize.ErrDuplicateID
		}
	}

	r.items = append(r.items, p)
	r.updatedAt = time.Now().UTC()
	return nil
}

func (r *PrizeRepository) Update(_ context.Context, p prize.Prize) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.items {
		if existing.ID == p.ID {
			r.items[i] = p
			r.updatedAt = time.Now().UTC()
			return nil
		}
	}
	return prize.ErrNotFound
}

func (r *PrizeRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.items {
		if existing.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			r.updatedAt = time.Now().UTC()
			return nil
		}
	}
	return prize.ErrNotFound
}
