package settings

import "context"

// GameConfig is the admin-editable scoring and kiosk configuration.
type GameConfig struct {
	PointsPerCorrectCard int
	PointsPerWrongCard   int
	BonusIdealLineup     int
	MaxScore             int
	TimeLimitActive      bool
	TimeLimitSeconds     int
	StockWithGame        bool
}

func Default() GameConfig {
	return GameConfig{
		PointsPerCorrectCard: 3,
		PointsPerWrongCard:   0,
		BonusIdealLineup:     20,
		MaxScore:             38,
		TimeLimitActive:      false,
		TimeLimitSeconds:     60,
		StockWithGame:        true,
	}
}

// Patch carries a partial update; nil fields keep the current value.
type Patch struct {
	PointsPerCorrectCard *int
	PointsPerWrongCard   *int
	BonusIdealLineup     *int
	MaxScore             *int
	TimeLimitActive      *bool
	TimeLimitSeconds     *int
	StockWithGame        *bool
}

// Apply merges the patch over the current config, clamping every numeric
// field into its allowed range.
func Apply(current GameConfig, patch Patch) GameConfig {
	next := current
	if patch.PointsPerCorrectCard != nil {
		next.PointsPerCorrectCard = clamp(*patch.PointsPerCorrectCard, 0, 100)
	}
	if patch.PointsPerWrongCard != nil {
		next.PointsPerWrongCard = clamp(*patch.PointsPerWrongCard, 0, 100)
	}
	if patch.BonusIdealLineup != nil {
		next.BonusIdealLineup = clamp(*patch.BonusIdealLineup, 0, 500)
	}
	if patch.MaxScore != nil {
		next.MaxScore = clamp(*patch.MaxScore, 1, 10000)
	}
	if patch.TimeLimitActive != nil {
		next.TimeLimitActive = *patch.TimeLimitActive
	}
	if patch.TimeLimitSeconds != nil {
		next.TimeLimitSeconds = clamp(*patch.TimeLimitSeconds, 10, 3600)
	}
	if patch.StockWithGame != nil {
		next.StockWithGame = *patch.StockWithGame
	}
	return next
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Repository persists the config document. Get returns defaults when the
// document has never been written.
type Repository interface {
	Get(ctx context.Context) (GameConfig, error)
	Put(ctx context.Context, cfg GameConfig) error
}
