package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/lucasmrqs/financial-football/internal/domain/prize"
)

// SeedPrizes inserts the starter prize table when the prizes table is
// empty, so a fresh database behaves like the flat-file backend.
func SeedPrizes(ctx context.Context, db *sqlx.DB, seed []prize.Prize) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(*) FROM prizes`); err != nil {
		return fmt.Errorf("count prizes: %w", err)
	}
	if count > 0 {
		return nil
	}

	repo := NewPrizeRepository(db)
	for _, p := range seed {
		if err := repo.Create(ctx, p); err != nil {
			return fmt.Errorf("seed prize %s: %w", p.ID, err)
		}
	}
	return nil
}
