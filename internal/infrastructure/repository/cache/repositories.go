// Package cache wraps repositories with a read-through in-process cache.
// Intended for the file and postgres backends, where every kiosk page load
// would otherwise hit the store for data that changes only on admin writes.
package cache

import (
	"context"
	"time"

	"github.com/lucasmrqs/financial-football/internal/domain/asset"
	"github.com/lucasmrqs/financial-football/internal/domain/prize"
	"github.com/lucasmrqs/financial-football/internal/domain/settings"
	basecache "github.com/lucasmrqs/financial-football/internal/platform/cache"
)

type PrizeRepository struct {
	next  prize.Repository
	cache *basecache.Store
}

func NewPrizeRepository(next prize.Repository, cache *basecache.Store) *PrizeRepository {
	return &PrizeRepository{next: next, cache: cache}
}

func (r *PrizeRepository) List(ctx context.Context) ([]prize.Prize, time.Time, error) {
	v, err := r.cache.GetOrLoad(ctx, "prize:list", func(ctx context.Context) (any, error) {
		items, updatedAt, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return cachedPrizeList{items: append([]prize.Prize(nil), items...), updatedAt: updatedAt}, nil
	})
	if err != nil {
		return nil, time.Time{}, err
	}

	cached, _ := v.(cachedPrizeList)
	return append([]prize.Prize(nil), cached.items...), cached.updatedAt, nil
}

func (r *PrizeRepository) Create(ctx context.Context, p prize.Prize) error {
	if err := r.next.Create(ctx, p); err != nil {
		return err
	}
	r.cache.Delete(ctx, "prize:list")
	return nil
}

func (r *PrizeRepository) Update(ctx context.Context, p prize.Prize) error {
	if err := r.next.Update(ctx, p); err != nil {
		return err
	}
	r.cache.Delete(ctx, "prize:list")
	return nil
}

func (r *PrizeRepository) Delete(ctx context.Context, id string) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.cache.Delete(ctx, "prize:list")
	return nil
}

type cachedPrizeList struct {
	items     []prize.Prize
	updatedAt time.Time
}

type PositionsRepository struct {
	next  asset.PositionsRepository
	cache *basecache.Store
}

func NewPositionsRepository(next asset.PositionsRepository, cache *basecache.Store) *PositionsRepository {
	return &PositionsRepository{next: next, cache: cache}
}

func (r *PositionsRepository) Get(ctx context.Context) (asset.Positions, error) {
	v, err := r.cache.GetOrLoad(ctx, "positions:doc", func(ctx context.Context) (any, error) {
		positions, err := r.next.Get(ctx)
		if err != nil {
			return nil, err
		}
		return clonePositions(positions), nil
	})
	if err != nil {
		return nil, err
	}

	positions, _ := v.(asset.Positions)
	return clonePositions(positions), nil
}

func (r *PositionsRepository) Put(ctx context.Context, positions asset.Positions) error {
	if err := r.next.Put(ctx, positions); err != nil {
		return err
	}
	r.cache.Delete(ctx, "positions:doc")
	return nil
}

func clonePositions(positions asset.Positions) asset.Positions {
	out := make(asset.Positions, len(positions))
	for id, overrides := range positions {
		out[id] = append([]asset.Override(nil), overrides...)
	}
	return out
}

type SettingsRepository struct {
	next  settings.Repository
	cache *basecache.Store
}

func NewSettingsRepository(next settings.Repository, cache *basecache.Store) *SettingsRepository {
	return &SettingsRepository{next: next, cache: cache}
}

func (r *SettingsRepository) Get(ctx context.Context) (settings.GameConfig, error) {
	v, err := r.cache.GetOrLoad(ctx, "settings:doc", func(ctx context.Context) (any, error) {
		return r.next.Get(ctx)
	})
	if err != nil {
		return settings.GameConfig{}, err
	}

	cfg, _ := v.(settings.GameConfig)
	return cfg, nil
}

func (r *SettingsRepository) Put(ctx context.Context, cfg settings.GameConfig) error {
	if err := r.next.Put(ctx, cfg); err != nil {
		return err
	}
	r.cache.Delete(ctx, "settings:doc")
	return nil
}
