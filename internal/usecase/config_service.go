package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lucasmrqs/financial-football/internal/domain/settings"
)

// ConfigService reads and patches the game configuration document.
type ConfigService struct {
	repo   settings.Repository
	logger *slog.Logger
}

func NewConfigService(repo settings.Repository, logger *slog.Logger) *ConfigService {
	if logger == nil {
		logger = slog.Default()
	}

	return &ConfigService{repo: repo, logger: logger}
}

func (s *ConfigService) Get(ctx context.Context) (settings.GameConfig, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ConfigService.Get")
	defer span.End()

	cfg, err := s.repo.Get(ctx)
	if err != nil {
		return settings.GameConfig{}, fmt.Errorf("get game config: %w", err)
	}
	return cfg, nil
}

// Update merges a partial patch over the stored config and persists the
// clamped result.
func (s *ConfigService) Update(ctx context.Context, patch settings.Patch) (settings.GameConfig, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ConfigService.Update")
	defer span.End()

	current, err := s.repo.Get(ctx)
	if err != nil {
		return settings.GameConfig{}, fmt.Errorf("get game config: %w", err)
	}

	next := settings.Apply(current, patch)
	if err := s.repo.Put(ctx, next); err != nil {
		return settings.GameConfig{}, fmt.Errorf("put game config: %w", err)
	}

	s.logger.InfoContext(ctx, "game config updated",
		"points_per_correct", next.PointsPerCorrectCard,
		"bonus_ideal_lineup", next.BonusIdealLineup,
		"max_score", next.MaxScore,
		"stock_with_game", next.StockWithGame,
	)

	return next, nil
}
