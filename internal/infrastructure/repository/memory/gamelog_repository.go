package memory

import (
	"context"
	"sync"

	"github.com/lucasmrqs/financial-football/internal/domain/gamelog"
)

type GameLogRepository struct {
	mu      sync.RWMutex
	records []gamelog.Record
}

func NewGameLogRepository() *GameLogRepository {
	return &GameLogRepository{}
}

func (r *GameLogRepository) Append(_ context.Context, record gamelog.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record.Cards = append([]gamelog.Card(nil), record.Cards...)
	r.records = append(r.records, record)
	return nil
}

func (r *GameLogRepository) ListAll(_ context.Context) ([]gamelog.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gamelog.Record, len(r.records))
	for i, record := range r.records {
		record.Cards = append([]gamelog.Card(nil), record.Cards...)
		out[i] = record
	}
	return out, nil
}
