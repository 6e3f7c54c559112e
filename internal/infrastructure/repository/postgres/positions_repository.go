package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/lucasmrqs/financial-football/internal/domain/asset"
	"github.com/lucasmrqs/financial-football/internal/domain/game"
)

type positionOverrideTableModel struct {
	AssetID int            `db:"asset_id"`
	Profile string         `db:"profile"`
	Zones   pq.StringArray `db:"zones"`
}

// PositionsRepository stores one row per (asset, profile) override. Put
// replaces the whole document, matching the admin editor's save-all flow.
type PositionsRepository struct {
	db *sqlx.DB
}

func NewPositionsRepository(db *sqlx.DB) *PositionsRepository {
	return &PositionsRepository{db: db}
}

func (r *PositionsRepository) Get(ctx context.Context) (asset.Positions, error) {
	var rows []positionOverrideTableModel
	query := `SELECT asset_id, profile, zones FROM position_overrides ORDER BY asset_id, profile`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list position overrides: %w", err)
	}

	positions := make(asset.Positions, len(rows))
	for _, row := range rows {
		profile, ok := game.ParseProfile(row.Profile)
		if !ok {
			return nil, fmt.Errorf("position override asset %d: unknown profile %q", row.AssetID, row.Profile)
		}

		zones := make([]game.Zone, 0, len(row.Zones))
		for _, raw := range row.Zones {
			zone, ok := game.ParseZone(raw)
			if !ok {
				return nil, fmt.Errorf("position override asset %d: unknown zone %q", row.AssetID, raw)
			}
			zones = append(zones, zone)
		}

		positions[row.AssetID] = append(positions[row.AssetID], asset.Override{
			AssetID: row.AssetID,
			Profile: profile,
			Zones:   zones,
		})
	}
	return positions, nil
}

func (r *PositionsRepository) Put(ctx context.Context, positions asset.Positions) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx put position overrides: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM position_overrides`); err != nil {
		return fmt.Errorf("clear position overrides: %w", err)
	}

	query := `INSERT INTO position_overrides (asset_id, profile, zones) VALUES ($1, $2, $3)`
	for assetID, overrides := range positions {
		for _, o := range overrides {
			zones := make([]string, 0, len(o.Zones))
			for _, z := range o.Zones {
				zones = append(zones, string(z))
			}
			if _, err := tx.ExecContext(ctx, query, assetID, string(o.Profile), pq.StringArray(zones)); err != nil {
				return fmt.Errorf("insert position override: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit put position overrides tx: %w", err)
	}
	return nil
}
