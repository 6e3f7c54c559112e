package memory

import (
	"context"
	"sync"

	"github.com/lucasmrqs/financial-football/internal/domain/settings"
)

type SettingsRepository struct {
	mu  sync.RWMutex
	cfg settings.GameConfig
}

func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{cfg: settings.Default()}
}

func (r *SettingsRepository) Get(_ context.Context) (settings.GameConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.cfg, nil
}

func (r *SettingsRepository) Put(_ context.Context, cfg settings.GameConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cfg = cfg
	return nil
}
