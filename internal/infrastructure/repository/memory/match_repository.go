package memory

import (
	"context"
	"sync"

	"github.com/lucasmrqs/financial-football/internal/domain/game"
)

type MatchRepository struct {
	mu    sync.RWMutex
	items map[string]game.Match
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{items: make(map[string]game.Match)}
}

func (r *MatchRepository) Get(_ context.Context, id string) (game.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	match, ok := r.items[id]
	if !ok {
		return game.Match{}, false, nil
	}
	return cloneMatch(match), true, nil
}

func (r *MatchRepository) Upsert(_ context.Context, match game.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[match.ID] = cloneMatch(match)
	return nil
}

func (r *MatchRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

func cloneMatch(m game.Match) game.Match {
	copied := m
	copied.Placements = append([]game.Placement(nil), m.Placements...)
	return copied
}
