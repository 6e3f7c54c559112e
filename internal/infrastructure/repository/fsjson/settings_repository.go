package fsjson

import (
	"context"

	"github.com/lucasmrqs/financial-football/internal/domain/settings"
)

const configFile = "config.json"

type configDoc struct {
	PointsPerCorrectCard int  `json:"pointsPerCorrectCard"`
	PointsPerWrongCard   int  `json:"pointsPerWrongCard"`
	BonusIdealLineup     int  `json:"bonusIdealLineup"`
	MaxScore             int  `json:"maxScore"`
	TimeLimitActive      bool `json:"timeLimitActive"`
	TimeLimitSeconds     int  `json:"timeLimitSeconds"`
	StockWithGame        bool `json:"stockWithGame"`
}

// SettingsRepository persists the game configuration document.
type SettingsRepository struct {
	store *Store
}

func NewSettingsRepository(store *Store) *SettingsRepository {
	return &SettingsRepository{store: store}
}

func (r *SettingsRepository) Get(_ context.Context) (settings.GameConfig, error) {
	lock := r.store.lockFor(configFile)
	lock.Lock()
	defer lock.Unlock()

	var doc configDoc
	ok, err := r.store.read(configFile, &doc)
	if err != nil {
		return settings.GameConfig{}, err
	}
	if !ok {
		return settings.Default(), nil
	}
	return settings.GameConfig(doc), nil
}

func (r *SettingsRepository) Put(_ context.Context, cfg settings.GameConfig) error {
	lock := r.store.lockFor(configFile)
	lock.Lock()
	defer lock.Unlock()

	return r.store.write(configFile, configDoc(cfg))
}
