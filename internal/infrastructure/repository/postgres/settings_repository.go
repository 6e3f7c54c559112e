package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/lucasmrqs/financial-football/internal/domain/settings"
)

type gameConfigTableModel struct {
	PointsPerCorrectCard int  `db:"points_per_correct_card"`
	PointsPerWrongCard   int  `db:"points_per_wrong_card"`
	BonusIdealLineup     int  `db:"bonus_ideal_lineup"`
	MaxScore             int  `db:"max_score"`
	TimeLimitActive      bool `db:"time_limit_active"`
	TimeLimitSeconds     int  `db:"time_limit_seconds"`
	StockWithGame        bool `db:"stock_with_game"`
}

// SettingsRepository keeps the config as a single row, created lazily on
// the first write.
type SettingsRepository struct {
	db *sqlx.DB
}

func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get(ctx context.Context) (settings.GameConfig, error) {
	var row gameConfigTableModel
	query := `SELECT points_per_correct_card, points_per_wrong_card, bonus_ideal_lineup,
       max_score, time_limit_active, time_limit_seconds, stock_with_game
FROM game_config
WHERE id = 1`
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		if isNotFound(err) {
			return settings.Default(), nil
		}
		return settings.GameConfig{}, fmt.Errorf("get game config: %w", err)
	}
	return settings.GameConfig(row), nil
}

func (r *SettingsRepository) Put(ctx context.Context, cfg settings.GameConfig) error {
	query := `INSERT INTO game_config (id, points_per_correct_card, points_per_wrong_card, bonus_ideal_lineup,
                         max_score, time_limit_active, time_limit_seconds, stock_with_game)
VALUES (1, $1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id)
DO UPDATE SET
    points_per_correct_card = EXCLUDED.points_per_correct_card,
    points_per_wrong_card = EXCLUDED.points_per_wrong_card,
    bonus_ideal_lineup = EXCLUDED.bonus_ideal_lineup,
    max_score = EXCLUDED.max_score,
    time_limit_active = EXCLUDED.time_limit_active,
    time_limit_seconds = EXCLUDED.time_limit_seconds,
    stock_with_game = EXCLUDED.stock_with_game,
    updated_at = NOW()`
	_, err := r.db.ExecContext(ctx, query,
		cfg.PointsPerCorrectCard,
		cfg.PointsPerWrongCard,
		cfg.BonusIdealLineup,
		cfg.MaxScore,
		cfg.TimeLimitActive,
		cfg.TimeLimitSeconds,
		cfg.StockWithGame,
	)
	if err != nil {
		return fmt.Errorf("upsert game config: %w", err)
	}
	return nil
}
