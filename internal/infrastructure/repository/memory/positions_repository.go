package memory

import (
	"context"
	"sync"

	"github.com/lucasmrqs/financial-football/internal/domain/asset"
	"github.com/lucasmrqs/financial-football/internal/domain/game"
)

type PositionsRepository struct {
	mu        sync.RWMutex
	positions asset.Positions
}

func NewPositionsRepository() *PositionsRepository {
	return &PositionsRepository{positions: asset.Positions{}}
}

func (r *PositionsRepository) Get(_ context.Context) (asset.Positions, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return clonePositions(r.positions), nil
}

func (r *PositionsRepository) Put(_ context.Context, positions asset.Positions) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.positions = clonePositions(positions)
	return nil
}

func clonePositions(p asset.Positions) asset.Positions {
	copied := make(asset.Positions, len(p))
	for id, overrides := range p {
		items := make([]asset.Override, len(overrides))
		for i, o := range overrides {
			o.Zones = append([]game.Zone(nil), o.Zones...)
			items[i] = o
		}
		copied[id] = items
	}
	return copied
}
